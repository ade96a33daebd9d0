package parser

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser converts markdown into an element sequence using the
// goldmark AST. Headings map to Header elements, paragraphs to NarrativeText,
// lists to ListItem elements, and tables to a single Table element. An image
// standing alone in a paragraph yields a textless Image element.
type MarkdownParser struct {
	md goldmark.Markdown
}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]Element, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if p.md == nil {
		p.md = goldmark.New(goldmark.WithExtensions(extension.Table))
	}
	doc := p.md.Parser().Parse(text.NewReader(src))

	var elements []Element
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		elements = append(elements, blockElements(node, src)...)
	}
	return elements, nil
}

// blockElements converts one top-level block node into elements.
func blockElements(node ast.Node, src []byte) []Element {
	switch n := node.(type) {
	case *ast.Heading:
		if txt := strings.TrimSpace(nodeText(n, src)); txt != "" {
			return []Element{TextElement(CategoryHeader, txt)}
		}
		return nil

	case *ast.Paragraph:
		if isImageOnly(n) {
			return []Element{BareElement(CategoryImage)}
		}
		if txt := strings.TrimSpace(nodeText(n, src)); txt != "" {
			return []Element{TextElement(CategoryNarrativeText, txt)}
		}
		return nil

	case *ast.List:
		var elements []Element
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			if txt := strings.TrimSpace(nodeText(item, src)); txt != "" {
				elements = append(elements, TextElement(CategoryListItem, txt))
			}
		}
		return elements

	case *ast.FencedCodeBlock:
		return codeElements(n, src)
	case *ast.CodeBlock:
		return codeElements(n, src)

	case *east.Table:
		if txt := tableText(n, src); txt != "" {
			return []Element{TextElement(CategoryTable, txt)}
		}
		return nil

	default:
		if txt := strings.TrimSpace(nodeText(node, src)); txt != "" {
			return []Element{TextElement(CategoryNarrativeText, txt)}
		}
		return nil
	}
}

func codeElements(node ast.Node, src []byte) []Element {
	var buf strings.Builder
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	if txt := strings.TrimRight(buf.String(), "\n"); txt != "" {
		return []Element{TextElement(CategoryNarrativeText, txt)}
	}
	return nil
}

// tableText renders a table as pipe-separated rows, one row per line.
func tableText(table *east.Table, src []byte) string {
	var rows []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(nodeText(cell, src)))
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}
	return strings.Join(rows, "\n")
}

// isImageOnly reports whether a paragraph contains an image and no text.
func isImageOnly(para *ast.Paragraph) bool {
	sawImage := false
	for child := para.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Image:
			sawImage = true
		default:
			return false
		}
	}
	return sawImage
}

// nodeText collects the raw text content under a node.
func nodeText(node ast.Node, src []byte) string {
	var buf strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Image:
			// Alt text only; the image itself has no extractable text.
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
