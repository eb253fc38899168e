package model

import "strings"

// Status is the final result of a single test case.
type Status int

// Available Status values. StatusUnknown marks input that did not map onto
// any of the defined categories.
const (
	StatusUnknown Status = iota
	StatusSucceeded
	StatusFailed
	StatusError
	StatusSkipped
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusError:
		return "error"
	case StatusSkipped:
		return "skipped"
	case StatusUnknown:
		fallthrough
	default:
		return "unknown"
	}
}

// ParseStatus maps common spellings onto a Status. Unrecognized text yields
// StatusUnknown.
func ParseStatus(text string) Status {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "succeeded", "success", "passed", "pass", "ok":
		return StatusSucceeded
	case "failed", "failure", "fail":
		return StatusFailed
	case "error", "errored":
		return StatusError
	case "skipped", "skip", "ignored", "disabled":
		return StatusSkipped
	default:
		return StatusUnknown
	}
}

// IsErrorOrFailure reports whether the status counts against the test set.
func (s Status) IsErrorOrFailure() bool {
	return s == StatusFailed || s == StatusError
}
