package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts elements from PDF files. Each page's text is split into
// line blocks; lines that look like section headings become Header elements,
// everything else accumulates into NarrativeText paragraphs. Pages that yield
// no text at all (scanned images) produce a bare Image element.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) ([]Element, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docqa-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var elements []Element
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			// Likely a scanned page. Emit a textless element so the caller
			// can still count it.
			elements = append(elements, BareElement(CategoryImage))
			continue
		}
		elements = append(elements, elementsFromText(text)...)
	}

	return elements, nil
}

// elementsFromText turns raw page text into Header and NarrativeText elements.
func elementsFromText(text string) []Element {
	var elements []Element
	var paragraph []string

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		joined := strings.TrimSpace(strings.Join(paragraph, "\n"))
		if joined != "" {
			elements = append(elements, TextElement(CategoryNarrativeText, joined))
		}
		paragraph = paragraph[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case looksLikeHeading(trimmed):
			flush()
			elements = append(elements, TextElement(CategoryHeader, trimmed))
		default:
			paragraph = append(paragraph, trimmed)
		}
	}
	flush()

	return elements
}

const maxHeadingLen = 80

// looksLikeHeading applies layout-free heuristics to decide whether a line is
// a section heading: short, no sentence-ending punctuation, and either
// numbered ("3.1 Boundary Conditions"), all-caps, or title-cased.
func looksLikeHeading(line string) bool {
	if len(line) == 0 || len(line) > maxHeadingLen {
		return false
	}
	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") || strings.HasSuffix(line, ";") {
		return false
	}

	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 10 {
		return false
	}

	if isNumberedHeading(words[0]) {
		return true
	}
	if isAllCaps(line) {
		return true
	}
	return isTitleCased(words)
}

// isNumberedHeading matches prefixes like "3", "3.1", "3.1.2" or "IV.".
func isNumberedHeading(word string) bool {
	word = strings.TrimSuffix(word, ".")
	if word == "" {
		return false
	}
	for _, part := range strings.Split(word, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			if !unicode.IsDigit(r) && !strings.ContainsRune("IVXLC", r) {
				return false
			}
		}
	}
	return true
}

func isAllCaps(line string) bool {
	sawLetter := false
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			sawLetter = true
		}
	}
	return sawLetter
}

func isTitleCased(words []string) bool {
	capitalized := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	// Allow small connector words ("of", "and") to stay lowercase.
	return capitalized*3 >= len(words)*2
}
