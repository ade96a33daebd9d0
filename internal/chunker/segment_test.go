package chunker

import (
	"reflect"
	"strings"
	"testing"

	"docqa/internal/parser"
)

func TestSectionsHeaderBoundaries(t *testing.T) {
	elements := []parser.Element{
		parser.TextElement(parser.CategoryHeader, "A"),
		parser.TextElement(parser.CategoryNarrativeText, "foo"),
		parser.TextElement(parser.CategoryHeader, "B"),
		parser.TextElement(parser.CategoryNarrativeText, "bar"),
	}

	got := Sections(elements)
	want := []string{"A\nfoo", "B\nbar"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sections() = %v, want %v", got, want)
	}
}

func TestSectionsNoHeaderYieldsSingleSection(t *testing.T) {
	elements := []parser.Element{
		parser.TextElement(parser.CategoryNarrativeText, "first paragraph"),
		parser.TextElement(parser.CategoryNarrativeText, "second paragraph"),
		parser.TextElement(parser.CategoryTable, "a | b"),
	}

	got := Sections(elements)
	if len(got) != 1 {
		t.Fatalf("Sections() returned %d sections, want 1", len(got))
	}
	want := strings.TrimSpace("first paragraph\nsecond paragraph\na | b")
	if got[0] != want {
		t.Fatalf("Sections()[0] = %q, want %q", got[0], want)
	}
}

func TestSectionsSkipsTextlessElements(t *testing.T) {
	elements := []parser.Element{
		parser.TextElement(parser.CategoryHeader, "Figures"),
		parser.BareElement(parser.CategoryImage),
		parser.TextElement(parser.CategoryNarrativeText, "caption text"),
	}

	got := Sections(elements)
	want := []string{"Figures\ncaption text"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sections() = %v, want %v", got, want)
	}
}

func TestSectionsEmptyAndBlankInput(t *testing.T) {
	if got := Sections(nil); len(got) != 0 {
		t.Fatalf("Sections(nil) = %v, want empty", got)
	}

	blank := []parser.Element{
		parser.TextElement(parser.CategoryNarrativeText, "   "),
		parser.BareElement(parser.CategoryImage),
	}
	if got := Sections(blank); len(got) != 0 {
		t.Fatalf("Sections(blank) = %v, want empty", got)
	}
}

func TestSectionsConsecutiveHeaders(t *testing.T) {
	elements := []parser.Element{
		parser.TextElement(parser.CategoryHeader, "A"),
		parser.TextElement(parser.CategoryHeader, "B"),
		parser.TextElement(parser.CategoryNarrativeText, "body"),
	}

	got := Sections(elements)
	want := []string{"A", "B\nbody"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sections() = %v, want %v", got, want)
	}
}
