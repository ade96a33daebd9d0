package parser

import (
	"bufio"
	"io"
	"strings"
)

// TextParser handles plain text files. Blank-line separated blocks become
// NarrativeText elements; heading-looking lines become Header elements using
// the same heuristics as the PDF parser.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]Element, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var buf strings.Builder
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return elementsFromText(buf.String()), nil
}
