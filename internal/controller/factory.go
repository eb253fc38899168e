package controller

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, or color is forced, it returns a styled TUI; the TUI
// only pages through bubbletea when useTTY is true.
// Otherwise it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool, options ...Option) UI {
	config := defaultUIConfig()
	for _, opt := range options {
		opt(&config)
	}

	if useTTY || config.forceColor {
		return newTUI(cmd.OutOrStdout(), useTTY, config)
	}

	return newSimpleUI(cmd, config)
}

// IsTTY checks if the given writer is a terminal (TTY).
// Returns false if the output is redirected to a file or pipe.
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
