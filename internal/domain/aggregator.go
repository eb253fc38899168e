package domain

import (
	"fmt"
	"strings"

	m "github.com/mouse-blink/treeport/internal/model"
)

const (
	testSetStartingPrefix = "+-- "
	testSetSeparator      = "|"
	testCasePrefix        = "| " + testSetStartingPrefix
)

// Reporter builds the report of one test set at a time. A test set starts
// with OnTestSetStarting and ends with OnTestSetCompleted; calls for
// different sets must not interleave.
type Reporter interface {
	// OnTestSetStarting opens a summary for set and returns the separator
	// and header lines.
	OnTestSetStarting(set m.TestSet) []m.Line
	// OnTestSetCompleted finalizes the open summary with outcomes and
	// returns one line per outcome, in order, plus the resolved level.
	OnTestSetCompleted(outcomes []m.TestOutcome) ([]m.Line, m.Level)
	// Summary returns the most recently finalized summary, or nil.
	Summary() *m.TestSetSummary
	// SummaryLine renders the closing "Tests run" line for summary.
	SummaryLine(summary *m.TestSetSummary) m.Line
}

// ReporterOption configures a Reporter.
type ReporterOption func(*reporterConfig)

type reporterConfig struct {
	phrasedRunning bool
	phrasedSummary bool
}

// WithPhrasedRunning controls whether the header prefers the display name
// of a test set over its source name.
func WithPhrasedRunning(enabled bool) ReporterOption {
	return func(c *reporterConfig) {
		c.phrasedRunning = enabled
	}
}

// WithPhrasedSummary controls whether the summary line prefers the display
// name of a test set over its source name.
func WithPhrasedSummary(enabled bool) ReporterOption {
	return func(c *reporterConfig) {
		c.phrasedSummary = enabled
	}
}

type reporter struct {
	classifier Classifier
	config     reporterConfig
	current    *m.TestSetSummary
	last       *m.TestSetSummary
}

// NewReporter constructs a Reporter that renders outcomes with classifier.
func NewReporter(classifier Classifier, options ...ReporterOption) Reporter {
	config := reporterConfig{phrasedRunning: true, phrasedSummary: true}
	for _, opt := range options {
		opt(&config)
	}

	return &reporter{
		classifier: classifier,
		config:     config,
	}
}

func (r *reporter) OnTestSetStarting(set m.TestSet) []m.Line {
	r.current = m.NewTestSetSummary(set)

	header := r.testSetName(set, r.config.phrasedRunning)

	return []m.Line{
		m.PlainLine(testSetSeparator),
		header.Prepend(m.Segment{Text: testSetStartingPrefix}),
	}
}

func (r *reporter) OnTestSetCompleted(outcomes []m.TestOutcome) ([]m.Line, m.Level) {
	summary := r.current
	if summary == nil || summary.Finalized() {
		summary = m.NewTestSetSummary(m.TestSet{})
	}

	// summary is open here, so Add cannot fail.
	_ = summary.Add(outcomes...)
	summary.Finalize()

	r.current = nil
	r.last = summary

	lines := make([]m.Line, 0, len(outcomes))

	for _, outcome := range summary.Outcomes() {
		_, line := r.classifier.Classify(outcome)
		lines = append(lines, line.Prepend(m.Segment{Text: testCasePrefix}))
	}

	return lines, summary.Level()
}

func (r *reporter) Summary() *m.TestSetSummary {
	return r.last
}

func (r *reporter) SummaryLine(summary *m.TestSetSummary) m.Line {
	if summary == nil {
		return m.Line{}
	}

	counts := summary.Counts()

	text := fmt.Sprintf("Tests run: %d, Failures: %d, Errors: %d, Skipped: %d",
		counts.Completed, counts.Failures, counts.Errors, counts.Skipped)
	if counts.Unknown > 0 {
		text += fmt.Sprintf(", Unknown: %d", counts.Unknown)
	}

	text += ", Time elapsed: " + m.FormatElapsed(summary.Elapsed()) + " s"

	segments := []m.Segment{{Text: text, Style: levelStyle(counts.Level())}}

	if counts.Failures > 0 || counts.Errors > 0 {
		segments = append(segments, m.Segment{Text: " <<< FAILURE!", Style: m.StyleFailure})
	}

	name := r.testSetName(summary.Set, r.config.phrasedSummary)
	if name.String() != "" {
		segments = append(segments, m.Segment{Text: " - in "})
		segments = append(segments, name.Segments...)
	}

	return m.NewLine(segments...)
}

// testSetName renders the set's display name in bold when phrased and
// present; otherwise the source name with only the class part in bold.
func (r *reporter) testSetName(set m.TestSet, phrased bool) m.Line {
	if phrased {
		if name := set.ReportNameWithGroup(); name != "" {
			return m.NewLine(m.Segment{Text: name, Style: m.StyleStrong})
		}
	}

	pkg, class := splitSourceName(set.Name)
	group := strings.TrimPrefix(set.NameWithGroup(), set.Name)

	return m.NewLine(
		m.Segment{Text: pkg},
		m.Segment{Text: class, Style: m.StyleStrong},
		m.Segment{Text: group},
	)
}

// splitSourceName splits "com.example.FooTest" or "example.com/pkg/foo"
// into its namespace prefix (with the trailing separator) and last element.
func splitSourceName(name string) (string, string) {
	end := strings.LastIndexAny(name, "./")
	if end == -1 {
		return "", name
	}

	return name[:end+1], name[end+1:]
}

// levelStyle maps a level onto the style of the line reporting it.
func levelStyle(level m.Level) m.Style {
	switch level {
	case m.LevelSuccess:
		return m.StyleSuccess
	case m.LevelWarning:
		return m.StyleWarning
	case m.LevelError:
		return m.StyleFailure
	case m.LevelInfo:
		fallthrough
	default:
		return m.StylePlain
	}
}
