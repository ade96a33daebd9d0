package chunker

import (
	"reflect"
	"strings"
	"testing"
)

// The fallback counter (rune count) makes budgets exact, so most splitter
// tests use it.

func TestSplitWithinBudgetUnchanged(t *testing.T) {
	s := NewSplitter(NewFallbackCounter(), 100, 10)
	text := "short section that fits"

	got := s.Split(text)
	if !reflect.DeepEqual(got, []string{text}) {
		t.Fatalf("Split() = %v, want single unchanged window", got)
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("a", 40)
	para2 := strings.Repeat("b", 40)
	text := para1 + "\n\n" + para2

	s := NewSplitter(NewFallbackCounter(), 50, 0)
	got := s.Split(text)

	if len(got) != 2 {
		t.Fatalf("Split() produced %d windows, want 2: %q", len(got), got)
	}
	if !strings.HasPrefix(got[0], para1) {
		t.Errorf("window 0 should start with first paragraph, got %q", got[0])
	}
	if got[1] != para2 {
		t.Errorf("window 1 = %q, want second paragraph", got[1])
	}
}

func TestSplitWindowsRespectBudget(t *testing.T) {
	counter := NewFallbackCounter()
	budget, overlap := 64, 8

	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("the quick brown fox jumps over the lazy dog. ")
	}
	text := b.String()

	s := NewSplitter(counter, budget, overlap)
	got := s.Split(text)

	if len(got) < 2 {
		t.Fatalf("expected multiple windows, got %d", len(got))
	}
	for i, w := range got {
		if n := counter.Count(w); n > budget {
			t.Errorf("window %d has %d tokens, budget %d", i, n, budget)
		}
	}
}

func TestSplitCoversContentWithoutGaps(t *testing.T) {
	counter := NewFallbackCounter()
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("sentence number with words. ")
	}
	text := b.String()

	s := NewSplitter(counter, 64, 8)
	windows := s.Split(text)

	// Removing each window's overlap with its predecessor and concatenating
	// must reconstruct a string containing the original content in order.
	var rebuilt strings.Builder
	rebuilt.WriteString(windows[0])
	for i := 1; i < len(windows); i++ {
		w := windows[i]
		prev := rebuilt.String()
		// Find the longest suffix of prev that prefixes w.
		joined := w
		for cut := len(w); cut > 0; cut-- {
			if strings.HasSuffix(prev, w[:cut]) {
				joined = w[cut:]
				break
			}
		}
		rebuilt.WriteString(joined)
	}

	if rebuilt.String() != text {
		t.Fatalf("windows do not reconstruct the original text:\nwant %q\ngot  %q", text, rebuilt.String())
	}
}

func TestSplitConsecutiveWindowsShareOverlap(t *testing.T) {
	counter := NewFallbackCounter()
	overlap := 12 // one full sentence piece, so the carry has something to keep

	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("alpha beta. ")
	}
	s := NewSplitter(counter, 60, overlap)
	windows := s.Split(b.String())

	if len(windows) < 2 {
		t.Fatalf("expected multiple windows, got %d", len(windows))
	}
	shared := 0
	for i := 1; i < len(windows); i++ {
		for cut := len(windows[i]); cut > 0; cut-- {
			if strings.HasSuffix(windows[i-1], windows[i][:cut]) {
				if cut > 0 {
					shared++
				}
				break
			}
		}
	}
	if shared == 0 {
		t.Fatal("no consecutive windows share boundary context")
	}
}

func TestSplitDeterministic(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		b.WriteString("deterministic output for identical input parameters. ")
	}
	text := b.String()

	s1 := NewSplitter(NewFallbackCounter(), 80, 12)
	s2 := NewSplitter(NewFallbackCounter(), 80, 12)
	if !reflect.DeepEqual(s1.Split(text), s2.Split(text)) {
		t.Fatal("Split() is not deterministic for identical input")
	}
}

func TestSplitHardCutWithoutSeparators(t *testing.T) {
	counter := NewFallbackCounter()

	// 200 distinct runes and no structural boundary at all, so overlap
	// detection below is unambiguous.
	runes := make([]rune, 200)
	for i := range runes {
		runes[i] = rune('A' + i)
	}
	text := string(runes)

	s := NewSplitter(counter, 50, 5)
	windows := s.Split(text)

	if len(windows) < 4 {
		t.Fatalf("expected >= 4 hard-cut windows, got %d", len(windows))
	}
	for i, w := range windows {
		if counter.Count(w) > 50 {
			t.Errorf("window %d exceeds budget: %d runes", i, len([]rune(w)))
		}
	}
	// Coverage: subtracting each window's overlap with its predecessor and
	// concatenating must reconstruct the original exactly.
	var rebuilt strings.Builder
	rebuilt.WriteString(windows[0])
	for i := 1; i < len(windows); i++ {
		w := windows[i]
		prev := rebuilt.String()
		joined := w
		for cut := len(w); cut > 0; cut-- {
			if strings.HasSuffix(prev, w[:cut]) {
				joined = w[cut:]
				break
			}
		}
		rebuilt.WriteString(joined)
	}
	if rebuilt.String() != text {
		t.Fatal("hard-cut windows do not cover the original text")
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := NewSplitter(NewFallbackCounter(), 10, 2)
	if got := s.Split(""); got != nil {
		t.Fatalf("Split(\"\") = %v, want nil", got)
	}
}
