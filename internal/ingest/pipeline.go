package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"docqa/internal/chunker"
	"docqa/internal/contextutil"
	"docqa/internal/dump"
	"docqa/internal/parser"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

// Embedder turns texts into embedding vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Result describes what happened to a single file.
type Result int

const (
	// ResultIndexed means the file was parsed, chunked, embedded and stored.
	ResultIndexed Result = iota
	// ResultSkipped means the file was unchanged since the last run, or
	// produced no chunks.
	ResultSkipped
)

// Pipeline orchestrates the ingestion of document files into SQLite and Qdrant.
// Concurrent runs against the same store are unsupported.
type Pipeline struct {
	docRepo     storage.DocumentStore
	chunkRepo   storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	assembler   *chunker.Assembler
	walker      *Walker
	dumpDir     string
}

// SetDumpDir enables per-file diagnostic dumps under dir.
func (p *Pipeline) SetDumpDir(dir string) {
	p.dumpDir = dir
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
	chunkSize, chunkOverlap int,
) *Pipeline {
	return &Pipeline{
		docRepo:     docRepo,
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		assembler:   chunker.NewAssembler(chunker.NewCounter(), chunkSize, chunkOverlap),
		walker:      NewWalker(nil, nil),
	}
}

// IngestFile ingests a single document file.
// It checks whether the file has changed (via hash), parses and chunks it,
// generates embeddings, and stores chunks in both SQLite and Qdrant,
// replacing any prior chunks for the same document.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		return ResultSkipped, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	hash := sha256.Sum256(content)
	hashHex := fmt.Sprintf("%x", hash)
	filename := filepath.Base(path)

	existing, err := p.docRepo.GetByFilename(ctx, filename)
	if err != nil && err != storage.ErrNotFound {
		return ResultSkipped, fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "filename", filename, "hash", hashHex)
		return ResultSkipped, nil
	}

	fileParser, err := parser.ForFile(filename)
	if err != nil {
		return ResultSkipped, err
	}
	elements, err := fileParser.Parse(bytes.NewReader(content), filename)
	if err != nil {
		return ResultSkipped, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	logger.DebugContext(ctx, "parsed document",
		"filename", filename,
		"elements", len(elements),
		"categories", CategoryStats(elements),
	)
	if p.dumpDir != "" {
		dump.SaveJSON(ctx, filepath.Join(p.dumpDir, filename+".elements.json"), elements)
	}

	chunks := p.assembler.ChunkElements(ctx, elements, filename)
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "filename", filename)
		return ResultSkipped, nil
	}

	doc := &storage.DocumentRecord{Filename: filename, Hash: hashHex}
	if existing != nil {
		doc.ID = existing.ID
	}
	if err := p.docRepo.Upsert(ctx, doc); err != nil {
		return ResultSkipped, fmt.Errorf("failed to upsert document: %w", err)
	}

	// Replace prior chunks for this document
	if existing != nil {
		oldChunkIDs, err := p.chunkRepo.ListIDsByDocument(ctx, doc.ID)
		if err != nil {
			return ResultSkipped, fmt.Errorf("failed to list old chunk IDs: %w", err)
		}
		if len(oldChunkIDs) > 0 {
			if err := p.vectorStore.Delete(ctx, p.collection, oldChunkIDs); err != nil {
				// Continue anyway, new points overwrite by ID
				logger.WarnContext(ctx, "failed to delete old points", "error", err, "count", len(oldChunkIDs))
			}
			if err := p.chunkRepo.DeleteByDocument(ctx, doc.ID); err != nil {
				return ResultSkipped, fmt.Errorf("failed to delete old chunks: %w", err)
			}
		}
	}

	chunkTexts := make([]string, len(chunks))
	for i, chunk := range chunks {
		chunkTexts[i] = chunk.Content
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, chunkTexts)
	if err != nil {
		return ResultSkipped, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return ResultSkipped, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(embeddings))
	}

	records := make([]*storage.ChunkRecord, len(chunks))
	points := make([]vectorstore.Point, len(chunks))
	for i, chunk := range chunks {
		chunkID := uuid.New().String()

		records[i] = &storage.ChunkRecord{
			ID:         chunkID,
			DocumentID: doc.ID,
			ChunkIndex: chunk.Index,
			Content:    chunk.Content,
			TokenCount: chunk.TokenCount,
		}

		meta := chunk.Metadata()
		meta["content"] = chunk.Content
		points[i] = vectorstore.Point{
			ID:   chunkID,
			Vec:  embeddings[i],
			Meta: meta,
		}
	}

	for _, record := range records {
		if err := p.chunkRepo.Insert(ctx, record); err != nil {
			return ResultSkipped, fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return ResultSkipped, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "indexed document", "filename", filename, "chunks", len(chunks))
	return ResultIndexed, nil
}

// Run ingests a file or every supported file under a directory.
// Individual file failures are logged and counted but do not stop the run.
// The progress callback, when non-nil, is invoked after each file.
func (p *Pipeline) Run(ctx context.Context, root string, progress func(path string)) (Summary, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := p.walker.Walk(root)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		logger.WarnContext(ctx, "no supported files found", "root", root)
		return Summary{}, nil
	}

	summary := Summary{Total: len(files)}
	logger.InfoContext(ctx, "starting ingestion", "total_files", len(files))

	for _, file := range files {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		result, err := p.IngestFile(ctx, file)
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "failed to ingest file", "path", file, "error", err)
			summary.Failed++
		case result == ResultSkipped:
			summary.Skipped++
		default:
			summary.Indexed++
		}

		if progress != nil {
			progress(file)
		}
	}

	logger.InfoContext(ctx, "ingestion finished",
		"total", summary.Total,
		"indexed", summary.Indexed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return summary, nil
}
