package chunker

import (
	"strings"
	"unicode/utf8"
)

// Counter counts tokens in a text span. The counting mode is resolved once at
// construction and cached for the process lifetime: a subword estimator when
// available, otherwise a transparent fallback to raw rune count (same
// signature, coarser unit). Count never fails.
type Counter struct {
	estimate func(string) int
}

// NewCounter returns a counter backed by the subword estimator.
func NewCounter() *Counter {
	return &Counter{estimate: subwordEstimate}
}

// NewFallbackCounter returns a counter that counts runes. Used when no
// subword estimator is available.
func NewFallbackCounter() *Counter {
	return &Counter{}
}

// Count returns the token count of text, >= 0.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if c == nil || c.estimate == nil {
		return utf8.RuneCountInString(text)
	}
	return c.estimate(text)
}

// subwordEstimate approximates subword token counts without a vocabulary.
// English text averages roughly 1.33 tokens per word; exact tokenization is
// not required for chunking decisions.
func subwordEstimate(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}
