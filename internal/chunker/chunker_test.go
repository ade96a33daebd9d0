package chunker

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"docqa/internal/parser"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestChunkElementsSmallSectionPassesThrough(t *testing.T) {
	a := NewAssembler(NewFallbackCounter(), 512, 50)
	elements := []parser.Element{
		parser.TextElement(parser.CategoryHeader, "Overview"),
		parser.TextElement(parser.CategoryNarrativeText, "a short body"),
	}

	chunks := a.ChunkElements(context.Background(), elements, "doc.pdf")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Content != "Overview\na short body" {
		t.Fatalf("chunk content = %q, want the section text unchanged", chunks[0].Content)
	}
	if chunks[0].Source != "doc.pdf" {
		t.Fatalf("chunk source = %q, want doc.pdf", chunks[0].Source)
	}
	if chunks[0].Index != 0 {
		t.Fatalf("chunk index = %d, want 0", chunks[0].Index)
	}
}

func TestChunkElementsSplitsOversizedSection(t *testing.T) {
	counter := NewFallbackCounter()
	budget, overlap := 512, 50
	a := NewAssembler(counter, budget, overlap)

	// Roughly a thousand tokens of narrative under a single header.
	var body strings.Builder
	for i := 0; i < 40; i++ {
		body.WriteString("the solution of a differential equation indicates the actual concept. ")
	}
	elements := []parser.Element{
		parser.TextElement(parser.CategoryHeader, "Differential Equations"),
		parser.TextElement(parser.CategoryNarrativeText, body.String()),
	}

	chunks := a.ChunkElements(context.Background(), elements, "maths.pdf")
	if len(chunks) < 2 {
		t.Fatalf("oversized section should split into >= 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.TokenCount > budget {
			t.Errorf("chunk %d has %d tokens, budget %d", i, c.TokenCount, budget)
		}
		if c.Source != "maths.pdf" {
			t.Errorf("chunk %d source = %q", i, c.Source)
		}
		if c.Index != i {
			t.Errorf("chunk %d carries index %d", i, c.Index)
		}
	}
}

func TestChunkElementsEmptyInput(t *testing.T) {
	a := NewAssembler(NewFallbackCounter(), 512, 50)

	if chunks := a.ChunkElements(context.Background(), nil, "empty.pdf"); len(chunks) != 0 {
		t.Fatalf("empty input should yield no chunks, got %d", len(chunks))
	}

	blank := []parser.Element{parser.BareElement(parser.CategoryImage)}
	if chunks := a.ChunkElements(context.Background(), blank, "scan.pdf"); len(chunks) != 0 {
		t.Fatalf("blank input should yield no chunks, got %d", len(chunks))
	}
}

func TestChunkMetadata(t *testing.T) {
	c := Chunk{Content: "text", Source: "doc.pdf", Index: 3}
	meta := c.Metadata()

	if meta["source"] != "doc.pdf" {
		t.Fatalf("metadata source = %v, want doc.pdf", meta["source"])
	}
	if meta["chunk_index"] != 3 {
		t.Fatalf("metadata chunk_index = %v, want 3", meta["chunk_index"])
	}
}
