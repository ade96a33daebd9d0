package chunker

import "strings"

// defaultSeparators is the structural-boundary ladder, coarsest first:
// paragraph, line, sentence, word. When none remains the splitter hard-cuts
// by token count.
var defaultSeparators = []string{"\n\n", "\n", ". ", " "}

// Splitter splits a section exceeding the token budget into overlapping
// windows. It is a recursive best-effort splitter: split on the coarsest
// separator present, recurse with finer separators on any piece still over
// budget, then greedily merge adjacent pieces back into windows of at most
// Budget tokens where consecutive windows share roughly Overlap tokens of
// boundary context. Separators stay attached to the preceding piece, so the
// windows cover the input with no gaps. Output is deterministic for a given
// input and configuration.
type Splitter struct {
	counter    *Counter
	budget     int
	overlap    int
	separators []string
}

// NewSplitter creates a splitter with the given token budget and overlap.
// Overlap must be smaller than budget.
func NewSplitter(counter *Counter, budget, overlap int) *Splitter {
	if budget < 1 {
		budget = 1
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= budget {
		overlap = budget - 1
	}
	return &Splitter{
		counter:    counter,
		budget:     budget,
		overlap:    overlap,
		separators: defaultSeparators,
	}
}

// Split returns the overlapping windows for text. Text already within budget
// comes back unchanged as a single window.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if s.counter.Count(text) <= s.budget {
		return []string{text}
	}
	pieces := s.fragments(text, s.separators)
	return s.mergePieces(pieces)
}

// fragments recursively breaks text into pieces that each fit the budget.
func (s *Splitter) fragments(text string, separators []string) []string {
	if s.counter.Count(text) <= s.budget {
		return []string{text}
	}
	if len(separators) == 0 {
		return s.hardCut(text)
	}

	sep := separators[0]
	finer := separators[1:]

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		// Separator absent at this level, try the next one.
		return s.fragments(text, finer)
	}

	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		if s.counter.Count(part) > s.budget {
			pieces = append(pieces, s.fragments(part, finer)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// mergePieces greedily packs consecutive pieces into windows of at most
// budget tokens. When a window is flushed, the trailing pieces worth up to
// overlap tokens carry into the next window.
func (s *Splitter) mergePieces(pieces []string) []string {
	var windows []string
	var window []string
	windowTokens := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		joined := strings.Join(window, "")
		if strings.TrimSpace(joined) != "" {
			windows = append(windows, joined)
		}

		// Carry trailing pieces into the next window as overlap context.
		var carry []string
		carried := 0
		for i := len(window) - 1; i >= 0; i-- {
			n := s.counter.Count(window[i])
			if carried+n > s.overlap {
				break
			}
			carry = append([]string{window[i]}, carry...)
			carried += n
		}
		window = carry
		windowTokens = carried
	}

	for _, piece := range pieces {
		n := s.counter.Count(piece)
		if windowTokens+n > s.budget && len(window) > 0 {
			flush()
			// The carried overlap plus the new piece may still exceed the
			// budget; drop the carry rather than emit an oversized window.
			if windowTokens+n > s.budget {
				window = nil
				windowTokens = 0
			}
		}
		window = append(window, piece)
		windowTokens += n
	}
	if len(window) > 0 {
		joined := strings.Join(window, "")
		if strings.TrimSpace(joined) != "" {
			windows = append(windows, joined)
		}
	}

	return windows
}

// hardCut slices text by raw token count when no structural separator
// remains. Windows advance by budget-overlap tokens so consecutive cuts still
// share boundary context.
func (s *Splitter) hardCut(text string) []string {
	runes := []rune(text)
	var pieces []string

	start := 0
	for start < len(runes) {
		end := s.maxFit(runes, start, s.budget)
		pieces = append(pieces, string(runes[start:end]))
		if end >= len(runes) {
			break
		}

		next := s.backOff(runes, start, end)
		start = next
	}
	return pieces
}

// maxFit returns the largest end such that runes[start:end] fits within
// budget tokens. Token counts are monotone in the span length, so binary
// search applies.
func (s *Splitter) maxFit(runes []rune, start, budget int) int {
	lo, hi := start+1, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if s.counter.Count(string(runes[start:mid])) <= budget {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// backOff finds the start of the next window: back up from end until the
// suffix holds roughly overlap tokens, while guaranteeing forward progress.
func (s *Splitter) backOff(runes []rune, start, end int) int {
	if s.overlap == 0 {
		return end
	}
	lo, hi := start+1, end
	for lo < hi {
		mid := (lo + hi) / 2
		if s.counter.Count(string(runes[mid:end])) <= s.overlap {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo <= start {
		lo = start + 1
	}
	return lo
}
