package chunker

import "testing"

func TestCounterSubwordEstimate(t *testing.T) {
	c := NewCounter()

	if got := c.Count(""); got != 0 {
		t.Fatalf("Count(\"\") = %d, want 0", got)
	}
	if got := c.Count("word"); got < 1 {
		t.Fatalf("Count(single word) = %d, want >= 1", got)
	}

	// More words means more tokens.
	short := c.Count("one two three")
	long := c.Count("one two three four five six seven eight")
	if long <= short {
		t.Fatalf("Count should grow with word count: short=%d long=%d", short, long)
	}
}

func TestCounterFallbackCountsRunes(t *testing.T) {
	c := NewFallbackCounter()

	if got := c.Count("abcd"); got != 4 {
		t.Fatalf("fallback Count(\"abcd\") = %d, want 4", got)
	}
	if got := c.Count("héllo"); got != 5 {
		t.Fatalf("fallback Count should count runes, got %d, want 5", got)
	}
	if got := c.Count(""); got != 0 {
		t.Fatalf("fallback Count(\"\") = %d, want 0", got)
	}
}

func TestCounterSameSignatureAcrossModes(t *testing.T) {
	// Both modes satisfy the same contract: non-negative, zero only on empty.
	for _, c := range []*Counter{NewCounter(), NewFallbackCounter()} {
		if c.Count("   ") < 0 {
			t.Fatal("Count must never be negative")
		}
		if c.Count("some text") <= 0 {
			t.Fatal("Count of non-blank text must be positive")
		}
	}
}
