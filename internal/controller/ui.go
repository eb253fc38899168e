// Package controller provides console sinks for displaying test reports.
package controller

import (
	m "github.com/mouse-blink/treeport/internal/model"
)

// UI is the console sink reports are written to. It accepts (line, level)
// pairs and owns color rendering and stream writing.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start() error
	// Println writes one report line at level.
	Println(line m.Line, level m.Level)
	// DisplayTotals writes the aggregate results of the run.
	DisplayTotals(totals m.Totals)
	// Close flushes buffered output.
	Close() error
}

// Option is a functional option for NewUI.
type Option func(*uiConfig)

type uiConfig struct {
	levelPrefix bool
	forceColor  bool
	palette     Palette
}

func defaultUIConfig() uiConfig {
	return uiConfig{
		levelPrefix: true,
		palette:     DefaultPalette(),
	}
}

// WithLevelPrefix toggles the Maven-style "[INFO] " line prefix.
func WithLevelPrefix(enabled bool) Option {
	return func(c *uiConfig) {
		c.levelPrefix = enabled
	}
}

// WithForceColor makes NewUI return a styled UI even without a terminal.
func WithForceColor(enabled bool) Option {
	return func(c *uiConfig) {
		c.forceColor = enabled
	}
}

// WithPalette sets the colors used by the styled UI.
func WithPalette(p Palette) Option {
	return func(c *uiConfig) {
		c.palette = p
	}
}

// levelTag returns the log channel name a level is routed to. Success goes
// to the info channel.
func levelTag(level m.Level) string {
	switch level {
	case m.LevelWarning:
		return "WARNING"
	case m.LevelError:
		return "ERROR"
	case m.LevelInfo, m.LevelSuccess:
		fallthrough
	default:
		return "INFO"
	}
}
