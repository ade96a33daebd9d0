package ingest

import (
	"docqa/internal/parser"
)

// Summary reports the outcome of a batch ingestion run.
type Summary struct {
	Total   int // Files discovered
	Indexed int // Files parsed, embedded and stored
	Skipped int // Files unchanged since the last run, or empty after parsing
	Failed  int // Files that errored; the run continues past them
}

// AllFailed reports whether every discovered file failed. Batch entry points
// use this to decide the exit status.
func (s Summary) AllFailed() bool {
	return s.Total > 0 && s.Failed == s.Total
}

// CategoryStats counts parsed elements by category. Logged at debug level so
// parsing regressions (tables read as narrative text, headers lost) show up
// in ingestion logs.
func CategoryStats(elements []parser.Element) map[string]int {
	stats := make(map[string]int, 4)
	for _, el := range elements {
		stats[string(el.Category)]++
	}
	return stats
}
