package chunker

import (
	"context"
	"log/slog"

	"docqa/internal/contextutil"
	"docqa/internal/parser"
)

// Chunk is the minimal unit handed to the embedding stage: bounded-size text
// plus provenance metadata. Source is the originating filename, supplied by
// the ingestion caller. Index orders chunks within one source document.
type Chunk struct {
	Content    string
	Source     string
	Index      int
	TokenCount int
}

// Metadata returns the chunk's provenance mapping as stored alongside the
// embedding.
func (c Chunk) Metadata() map[string]any {
	return map[string]any{
		"source":      c.Source,
		"chunk_index": c.Index,
	}
}

// Assembler orchestrates segmentation and budget splitting: elements are
// grouped into header-delimited sections, sections within the token budget
// become one chunk each, oversized sections run through the splitter.
type Assembler struct {
	counter   *Counter
	splitter  *Splitter
	chunkSize int
}

// NewAssembler creates an assembler with the given chunk size (token budget)
// and overlap.
func NewAssembler(counter *Counter, chunkSize, overlap int) *Assembler {
	return &Assembler{
		counter:   counter,
		splitter:  NewSplitter(counter, chunkSize, overlap),
		chunkSize: chunkSize,
	}
}

// ChunkElements emits the final chunk sequence for one document. An empty
// result is valid (no elements, or nothing but blank text) and signals the
// caller to skip the persistence step.
func (a *Assembler) ChunkElements(ctx context.Context, elements []parser.Element, sourceFile string) []Chunk {
	logger := contextutil.LoggerFromContext(ctx)

	if len(elements) == 0 {
		logger.WarnContext(ctx, "no elements to chunk", "source", sourceFile)
		return nil
	}

	sections := Sections(elements)
	logger.DebugContext(ctx, "segmented elements",
		"source", sourceFile,
		"elements", len(elements),
		"sections", len(sections),
	)

	var chunks []Chunk
	for _, section := range sections {
		tokens := a.counter.Count(section)
		if tokens <= a.chunkSize {
			chunks = append(chunks, Chunk{
				Content:    section,
				Source:     sourceFile,
				Index:      len(chunks),
				TokenCount: tokens,
			})
			continue
		}

		logger.DebugContext(ctx, "splitting oversized section",
			"source", sourceFile,
			"tokens", tokens,
			"budget", a.chunkSize,
		)
		for _, window := range a.splitter.Split(section) {
			chunks = append(chunks, Chunk{
				Content:    window,
				Source:     sourceFile,
				Index:      len(chunks),
				TokenCount: a.counter.Count(window),
			})
		}
	}

	logChunkStats(ctx, logger, sourceFile, chunks)
	return chunks
}

func logChunkStats(ctx context.Context, logger *slog.Logger, sourceFile string, chunks []Chunk) {
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks produced", "source", sourceFile)
		return
	}
	minTokens, maxTokens, total := chunks[0].TokenCount, chunks[0].TokenCount, 0
	for _, c := range chunks {
		if c.TokenCount < minTokens {
			minTokens = c.TokenCount
		}
		if c.TokenCount > maxTokens {
			maxTokens = c.TokenCount
		}
		total += c.TokenCount
	}
	logger.InfoContext(ctx, "chunking complete",
		"source", sourceFile,
		"chunks", len(chunks),
		"min_tokens", minTokens,
		"max_tokens", maxTokens,
		"mean_tokens", total/len(chunks),
	)
}
