// Package domain turns finished test outcomes into leveled report lines.
package domain

import (
	"fmt"

	m "github.com/mouse-blink/treeport/internal/model"
)

// Category is the presentation bucket an outcome falls into.
type Category int

// Available Category values.
const (
	CategoryUnknown Category = iota
	CategorySuccess
	CategoryFailure
	CategorySkipped
)

const (
	failurePrefix = "[XX] "
	skippedPrefix = "[??] "
	successPrefix = "[OK] "
	unknownPrefix = "[!!] "
)

// Classifier renders a single outcome as one report line.
type Classifier interface {
	Classify(outcome m.TestOutcome) (Category, m.Line)
	FormatLine(outcome m.TestOutcome) string
}

type classifier struct{}

// NewClassifier constructs a Classifier. It holds no state.
func NewClassifier() Classifier {
	return classifier{}
}

// FormatLine returns the unstyled text of the outcome's line.
func (c classifier) FormatLine(outcome m.TestOutcome) string {
	_, line := c.Classify(outcome)

	return line.String()
}

// Classify picks the outcome's category and builds its styled line.
func (c classifier) Classify(outcome m.TestOutcome) (Category, m.Line) {
	name := outcome.ReportName()
	elapsed := m.Segment{Text: " - " + m.FormatElapsed(outcome.Elapsed) + "s"}

	switch outcome.Status {
	case m.StatusFailed, m.StatusError:
		return CategoryFailure, m.NewLine(
			m.Segment{Text: failurePrefix + name, Style: m.StyleFailure},
			elapsed,
		)

	case m.StatusSkipped:
		return CategorySkipped, m.NewLine(
			m.Segment{Text: skippedPrefix + name, Style: m.StyleWarning},
			reasonSegment(outcome.Message),
			elapsed,
		)

	case m.StatusSucceeded:
		return CategorySuccess, m.NewLine(
			m.Segment{Text: successPrefix + name, Style: m.StyleSuccess},
			elapsed,
		)

	case m.StatusUnknown:
		fallthrough
	default:
		raw := outcome.RawStatus
		if m.IsBlank(raw) {
			raw = outcome.Status.String()
		}

		return CategoryUnknown, m.NewLine(
			m.Segment{Text: unknownPrefix + name, Style: m.StyleWarning},
			reasonSegment(fmt.Sprintf("unrecognized status %q", raw)),
			elapsed,
		)
	}
}

// reasonSegment wraps a non-blank message in parentheses. Blank messages
// yield an empty segment, which NewLine drops.
func reasonSegment(message string) m.Segment {
	if m.IsBlank(message) {
		return m.Segment{}
	}

	return m.Segment{Text: " (" + message + ")", Style: m.StyleWarning}
}
