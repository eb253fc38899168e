package model

import "time"

// TestSet identifies a group of outcomes, commonly one test class or package.
type TestSet struct {
	Name        string // fully qualified source name, e.g. com.example.FooTest
	DisplayName string // human readable name, may be blank
	Group       string
	// Elapsed overrides the sum of outcome times when the producer reports
	// a wall-clock time for the whole set.
	Elapsed time.Duration
}

// NameWithGroup returns the source name with the group appended.
func (s TestSet) NameWithGroup() string {
	return withGroup(s.Name, s.Group)
}

// ReportNameWithGroup returns the display name with the group appended, or
// an empty string when there is no display name.
func (s TestSet) ReportNameWithGroup() string {
	if IsBlank(s.DisplayName) {
		return ""
	}

	return withGroup(s.DisplayName, s.Group)
}

func withGroup(name, group string) string {
	if IsBlank(group) {
		return name
	}

	return name + " (of " + group + ")"
}

// TestSetResult is one test set as loaded from a result file.
type TestSetResult struct {
	Set      TestSet
	Outcomes []TestOutcome
}
