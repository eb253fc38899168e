package controller

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "github.com/mouse-blink/treeport/internal/model"
)

// Palette holds the colors of the styled UI in lipgloss format: color
// names, hex ("#ff0000") or 256-color numbers ("120").
type Palette struct {
	Success string
	Failure string
	Warning string
	Info    string
}

// DefaultPalette mirrors the Maven console: green, red, yellow and blue.
func DefaultPalette() Palette {
	return Palette{
		Success: "2",
		Failure: "1",
		Warning: "3",
		Info:    "4",
	}
}

// styles maps abstract line styles and levels onto lipgloss styles.
type styles struct {
	segments map[m.Style]lipgloss.Style
	levels   map[m.Level]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, p Palette) styles {
	bold := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
	}

	return styles{
		segments: map[m.Style]lipgloss.Style{
			m.StylePlain:   r.NewStyle(),
			m.StyleStrong:  r.NewStyle().Bold(true),
			m.StyleSuccess: bold(p.Success),
			m.StyleFailure: bold(p.Failure),
			m.StyleWarning: bold(p.Warning),
		},
		levels: map[m.Level]lipgloss.Style{
			m.LevelInfo:    bold(p.Info),
			m.LevelSuccess: bold(p.Info),
			m.LevelWarning: bold(p.Warning),
			m.LevelError:   bold(p.Failure),
		},
	}
}

// renderLine styles each segment of line.
func (s styles) renderLine(line m.Line) string {
	var sb strings.Builder

	for _, seg := range line.Segments {
		style, ok := s.segments[seg.Style]
		if !ok || seg.Style == m.StylePlain {
			sb.WriteString(seg.Text)

			continue
		}

		sb.WriteString(style.Render(seg.Text))
	}

	return sb.String()
}

// renderPrefix returns "[TAG] " with the tag colored by level.
func (s styles) renderPrefix(level m.Level) string {
	return "[" + s.levels[level].Render(levelTag(level)) + "] "
}
