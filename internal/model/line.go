package model

import "strings"

// Style is an abstract presentation tag. Mapping a Style to colors is the
// job of the console sink.
type Style int

// Available Style values.
const (
	StylePlain Style = iota
	StyleStrong
	StyleSuccess
	StyleFailure
	StyleWarning
)

// Segment is a run of text sharing one style.
type Segment struct {
	Text  string
	Style Style
}

// Line is one rendered report line.
type Line struct {
	Segments []Segment
}

// NewLine builds a line from segments, dropping empty ones.
func NewLine(segments ...Segment) Line {
	kept := make([]Segment, 0, len(segments))

	for _, s := range segments {
		if s.Text != "" {
			kept = append(kept, s)
		}
	}

	return Line{Segments: kept}
}

// PlainLine builds a single unstyled line.
func PlainLine(text string) Line {
	return NewLine(Segment{Text: text})
}

// Prepend returns a copy of l with segments added in front.
func (l Line) Prepend(segments ...Segment) Line {
	return NewLine(append(segments, l.Segments...)...)
}

// String returns the text of the line without styling.
func (l Line) String() string {
	var sb strings.Builder

	for _, s := range l.Segments {
		sb.WriteString(s.Text)
	}

	return sb.String()
}
