package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestSetSummary_CountsFollowOutcomes(t *testing.T) {
	s := NewTestSetSummary(TestSet{Name: "com.example.FooTest"})

	require.NoError(t, s.Add(
		TestOutcome{Name: "ok", Status: StatusSucceeded, Elapsed: 10 * time.Millisecond},
		TestOutcome{Name: "bad", Status: StatusFailed, Elapsed: 20 * time.Millisecond},
	))
	require.NoError(t, s.Add(
		TestOutcome{Name: "boom", Status: StatusError},
		TestOutcome{Name: "later", Status: StatusSkipped},
		TestOutcome{Name: "odd", Status: StatusUnknown, RawStatus: "flaky"},
	))

	assert.Equal(t, Counts{Completed: 5, Failures: 1, Errors: 1, Skipped: 1, Unknown: 1}, s.Counts())
	assert.Equal(t, LevelError, s.Level())
	assert.Equal(t, 30*time.Millisecond, s.Elapsed())
}

func TestTestSetSummary_FinalizeRejectsAdd(t *testing.T) {
	s := NewTestSetSummary(TestSet{Name: "A"})
	s.Finalize()
	s.Finalize()

	assert.True(t, s.Finalized())
	assert.ErrorIs(t, s.Add(TestOutcome{Status: StatusSucceeded}), ErrSummaryFinalized)
	assert.Empty(t, s.Outcomes())
}

func TestTestSetSummary_OutcomesIsACopy(t *testing.T) {
	s := NewFinalizedSummary(TestSet{Name: "A"}, []TestOutcome{{Name: "x", Status: StatusSucceeded}})

	got := s.Outcomes()
	got[0].Status = StatusFailed

	assert.Equal(t, StatusSucceeded, s.Outcomes()[0].Status)
	assert.Equal(t, 0, s.Counts().Failures)
}

func TestTestSet_Names(t *testing.T) {
	set := TestSet{Name: "com.example.FooTest", DisplayName: "Foo behaviour", Group: "smoke"}

	assert.Equal(t, "com.example.FooTest (of smoke)", set.NameWithGroup())
	assert.Equal(t, "Foo behaviour (of smoke)", set.ReportNameWithGroup())
	assert.Equal(t, "", TestSet{Name: "x", DisplayName: "  "}.ReportNameWithGroup())
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"succeeded": StatusSucceeded,
		"PASS":      StatusSucceeded,
		"fail":      StatusFailed,
		"Error":     StatusError,
		" skip ":    StatusSkipped,
		"flaky":     StatusUnknown,
		"":          StatusUnknown,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseStatus(in), "ParseStatus(%q)", in)
	}
}

func TestLine_StringAndPrepend(t *testing.T) {
	l := NewLine(Segment{Text: "[OK] a", Style: StyleSuccess}, Segment{Text: ""}, Segment{Text: " - 1s"})
	require.Len(t, l.Segments, 2)

	p := l.Prepend(Segment{Text: "| +-- "})

	assert.Equal(t, "[OK] a - 1s", l.String())
	assert.Equal(t, "| +-- [OK] a - 1s", p.String())
	assert.Len(t, l.Segments, 2)
}

func TestTestOutcome_ReportName(t *testing.T) {
	assert.Equal(t, "name", TestOutcome{Name: "name", Source: "src"}.ReportName())
	assert.Equal(t, "src", TestOutcome{Name: " ", Source: "src"}.ReportName())
}
