package model

import (
	"errors"
	"time"
)

// ErrSummaryFinalized is returned when adding to a finalized summary.
var ErrSummaryFinalized = errors.New("test set summary is finalized")

// Counts is a tally of outcomes by category.
type Counts struct {
	Completed int
	Failures  int
	Errors    int
	Skipped   int
	Unknown   int
}

// Flags returns the booleans the level is resolved from.
func (c Counts) Flags() LevelFlags {
	return LevelFlags{
		Success:  c.Completed > 0,
		Failures: c.Failures > 0,
		Errors:   c.Errors > 0,
		Skipped:  c.Skipped > 0,
	}
}

// Level resolves the severity of the counts.
func (c Counts) Level() Level {
	return ResolveLevel(c.Flags())
}

// TallyOutcomes counts outcomes by status. Every outcome counts as completed.
func TallyOutcomes(outcomes []TestOutcome) Counts {
	c := Counts{Completed: len(outcomes)}

	for _, o := range outcomes {
		switch o.Status {
		case StatusFailed:
			c.Failures++
		case StatusError:
			c.Errors++
		case StatusSkipped:
			c.Skipped++
		case StatusSucceeded:
		default:
			c.Unknown++
		}
	}

	return c
}

// TestSetSummary holds the outcomes of one test set in arrival order. It is
// open for additions until Finalize is called.
type TestSetSummary struct {
	Set       TestSet
	outcomes  []TestOutcome
	finalized bool
}

// NewTestSetSummary creates an open summary for set.
func NewTestSetSummary(set TestSet) *TestSetSummary {
	return &TestSetSummary{Set: set}
}

// NewFinalizedSummary creates a summary holding outcomes and finalizes it.
func NewFinalizedSummary(set TestSet, outcomes []TestOutcome) *TestSetSummary {
	s := NewTestSetSummary(set)
	s.outcomes = append(s.outcomes, outcomes...)
	s.Finalize()

	return s
}

// Add appends outcomes in order.
func (s *TestSetSummary) Add(outcomes ...TestOutcome) error {
	if s.finalized {
		return ErrSummaryFinalized
	}

	s.outcomes = append(s.outcomes, outcomes...)

	return nil
}

// Finalize closes the summary. It is safe to call more than once.
func (s *TestSetSummary) Finalize() {
	s.finalized = true
}

// Finalized reports whether Finalize has been called.
func (s *TestSetSummary) Finalized() bool {
	return s.finalized
}

// Outcomes returns a copy of the outcome sequence.
func (s *TestSetSummary) Outcomes() []TestOutcome {
	out := make([]TestOutcome, len(s.outcomes))
	copy(out, s.outcomes)

	return out
}

// Counts tallies the outcome sequence.
func (s *TestSetSummary) Counts() Counts {
	return TallyOutcomes(s.outcomes)
}

// Level resolves the severity from the current counts.
func (s *TestSetSummary) Level() Level {
	return s.Counts().Level()
}

// Elapsed returns the set's own elapsed time when known, the sum of outcome
// times otherwise.
func (s *TestSetSummary) Elapsed() time.Duration {
	if s.Set.Elapsed > 0 {
		return s.Set.Elapsed
	}

	var total time.Duration
	for _, o := range s.outcomes {
		total += o.Elapsed
	}

	return total
}
