package model

import (
	"strings"
	"time"
)

// TestOutcome is the finished result of one test case. It is produced by a
// result source and never modified afterwards.
type TestOutcome struct {
	Name    string        // display name of the test
	Source  string        // class or package the test belongs to
	Elapsed time.Duration // wall-clock execution time
	Status  Status
	Message string // failure or skip reason
	// RawStatus keeps the input text when Status is StatusUnknown.
	RawStatus string
}

// ReportName returns the display name, falling back to the source name when
// the display name is blank.
func (o TestOutcome) ReportName() string {
	if !IsBlank(o.Name) {
		return o.Name
	}

	return o.Source
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
