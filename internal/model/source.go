// Package model defines the data structures for test result reporting.
package model

// Path represents a file system path.
type Path string

// Format identifies the on-disk layout of a result file.
type Format string

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = "auto"
	// FormatGoTest is the NDJSON stream written by `go test -json`.
	FormatGoTest Format = "gotest"
	// FormatJUnit is a JUnit XML report (testsuites/testsuite root).
	FormatJUnit Format = "junit"
	// FormatYAML is treeport's own YAML result format.
	FormatYAML Format = "yaml"
)
