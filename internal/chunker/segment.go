package chunker

import (
	"strings"

	"docqa/internal/parser"
)

// Sections groups a flat element sequence into logical sections using Header
// boundaries. A section accumulates element texts until the next Header
// element or document end; the header's own text seeds its section. Elements
// without extractable text are skipped. Sections are joined with newlines,
// trimmed, and dropped when empty, so every returned section is non-blank.
//
// A sequence with no Header yields at most one section; empty input yields an
// empty result (no error — callers decide whether that is worth a warning).
func Sections(elements []parser.Element) []string {
	var sections []string
	var current []string

	finalize := func() {
		if len(current) == 0 {
			return
		}
		text := strings.TrimSpace(strings.Join(current, "\n"))
		if text != "" {
			sections = append(sections, text)
		}
		current = nil
	}

	for _, el := range elements {
		if el.Category == parser.CategoryHeader {
			finalize()
			if el.HasText {
				current = []string{el.Text}
			}
			continue
		}
		if el.HasText {
			current = append(current, el.Text)
		}
	}
	finalize()

	return sections
}
