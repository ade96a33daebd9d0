package parser

// Category tags the role a parsed element plays in the source document.
type Category string

const (
	CategoryHeader        Category = "Header"
	CategoryNarrativeText Category = "NarrativeText"
	CategoryTable         Category = "Table"
	CategoryListItem      Category = "ListItem"
	CategoryImage         Category = "Image"
)

// Element is the atomic unit produced by document parsing. Text is only
// meaningful when HasText is true; elements without extractable text (images,
// figures) carry HasText=false and are skipped by the segmenter.
type Element struct {
	Category Category
	Text     string
	HasText  bool
}

// TextElement returns an element carrying text.
func TextElement(category Category, text string) Element {
	return Element{Category: category, Text: text, HasText: true}
}

// BareElement returns an element without extractable text.
func BareElement(category Category) Element {
	return Element{Category: category}
}
