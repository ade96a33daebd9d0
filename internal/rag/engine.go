package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collaborators.go -package=mocks docqa/internal/rag Embedder,Generator
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks docqa/internal/rag Engine

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/contextutil"
	"docqa/internal/rerank"
	"docqa/internal/service"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces an answer from a filled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Engine answers questions over the indexed document corpus.
type Engine interface {
	// Query retrieves relevant chunks for the question and generates a
	// grounded answer with source attribution.
	Query(ctx context.Context, req QueryRequest) (QueryResponse, error)
}

// Options configures the retrieval and generation behavior of the engine.
type Options struct {
	Collection     string
	CandidateK     int // Results fetched from the vector store
	ContextSize    int // Results kept for the prompt after re-ranking
	RerankEnabled  bool
	PromptTemplate string // Must contain {context} and {question}
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	chunkRepo   storage.ChunkStore
	reranker    *rerank.Reranker
	generator   Generator
	opts        Options
}

// NewEngine creates a new retrieval-answer engine.
func NewEngine(
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	chunkRepo storage.ChunkStore,
	generator Generator,
	opts Options,
) Engine {
	return &ragEngine{
		embedder:    embedder,
		vectorStore: vectorStore,
		chunkRepo:   chunkRepo,
		reranker:    rerank.New(),
		generator:   generator,
		opts:        opts,
	}
}

// Query answers a question using retrieval-augmented generation.
func (e *ragEngine) Query(ctx context.Context, req QueryRequest) (QueryResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Query)
	if question == "" {
		return QueryResponse{}, &service.ValidationError{Field: "query", Message: "query must not be blank"}
	}

	logger.InfoContext(ctx, "query received",
		"question_length", len(question),
		"candidate_k", e.opts.CandidateK,
		"context_size", e.opts.ContextSize,
		"rerank_enabled", e.opts.RerankEnabled,
	)

	// Embed the question
	embeddings, err := e.embedder.EmbedTexts(ctx, []string{question})
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed question", "error", err)
		return QueryResponse{}, service.External("embed query", err)
	}
	if len(embeddings) == 0 {
		return QueryResponse{}, service.External("embed query", fmt.Errorf("no embedding returned"))
	}

	// Retrieve candidates
	results, err := e.vectorStore.Search(ctx, e.opts.Collection, embeddings[0], e.opts.CandidateK, nil)
	if err != nil {
		logger.ErrorContext(ctx, "vector search failed", "error", err)
		return QueryResponse{}, service.External("vector search", err)
	}
	logger.InfoContext(ctx, "vector search completed", "results_count", len(results))

	docs := e.resolveDocuments(ctx, results)

	// Re-rank the candidate set, then keep the top ContextSize for the prompt
	if e.opts.RerankEnabled {
		docs = e.reranker.Rerank(question, docs)
	}
	if len(docs) > e.opts.ContextSize {
		docs = docs[:e.opts.ContextSize]
	}

	contextStr := formatContext(docs)
	prompt := fillPrompt(e.opts.PromptTemplate, contextStr, question)

	logger.DebugContext(ctx, "prompt assembled",
		"context_length", len(contextStr),
		"chunks_included", len(docs),
	)

	answer, err := e.generator.Generate(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return QueryResponse{}, service.External("generate answer", err)
	}

	sources := make([]SourceDocument, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, SourceDocument{Content: doc.Content, Source: doc.Source})
	}

	logger.InfoContext(ctx, "query answered",
		"answer_length", len(answer),
		"sources_count", len(sources),
	)

	return QueryResponse{Answer: answer, SourceDocuments: sources}, nil
}

// resolveDocuments turns search results into documents with chunk text.
// Text is looked up in the SQLite registry by point ID; the Qdrant payload
// content is the fallback when the registry has no row. Results with no
// resolvable text are dropped with a warning.
func (e *ragEngine) resolveDocuments(ctx context.Context, results []vectorstore.SearchResult) []rerank.Document {
	logger := contextutil.LoggerFromContext(ctx)

	docs := make([]rerank.Document, 0, len(results))
	for _, result := range results {
		source, _ := result.Meta["source"].(string)

		var content string
		chunk, err := e.chunkRepo.GetByID(ctx, result.PointID)
		if err == nil {
			content = chunk.Content
		} else {
			content, _ = result.Meta["content"].(string)
			if content == "" {
				logger.WarnContext(ctx, "dropping result with unresolvable chunk text",
					"point_id", result.PointID, "error", err)
				continue
			}
			logger.DebugContext(ctx, "chunk text resolved from payload", "point_id", result.PointID)
		}

		docs = append(docs, rerank.Document{
			Content: content,
			Source:  source,
			Score:   result.Score,
		})
	}
	return docs
}

// formatContext joins chunk contents with blank lines, in retrieval order.
func formatContext(docs []rerank.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n\n")
}

// fillPrompt substitutes the {context} and {question} slots of the template.
func fillPrompt(template, contextStr, question string) string {
	prompt := strings.ReplaceAll(template, "{context}", contextStr)
	return strings.ReplaceAll(prompt, "{question}", question)
}
