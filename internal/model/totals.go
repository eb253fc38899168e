package model

import "time"

// Totals aggregates the summaries of a whole run.
type Totals struct {
	Sets    int
	Counts  Counts
	Elapsed time.Duration
}

// ComputeTotals sums counts and elapsed time across summaries.
func ComputeTotals(summaries []*TestSetSummary) Totals {
	var t Totals

	for _, s := range summaries {
		if s == nil {
			continue
		}

		c := s.Counts()
		t.Sets++
		t.Counts.Completed += c.Completed
		t.Counts.Failures += c.Failures
		t.Counts.Errors += c.Errors
		t.Counts.Skipped += c.Skipped
		t.Counts.Unknown += c.Unknown
		t.Elapsed += s.Elapsed()
	}

	return t
}

// Level resolves the severity of the whole run.
func (t Totals) Level() Level {
	return t.Counts.Level()
}
