package controller

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/treeport/internal/model"
)

// SimpleUI implements UI using cobra Command's output without styling.
type SimpleUI struct {
	cmd         *cobra.Command
	mu          sync.Mutex
	levelPrefix bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, options ...Option) *SimpleUI {
	config := defaultUIConfig()
	for _, opt := range options {
		opt(&config)
	}

	return newSimpleUI(cmd, config)
}

func newSimpleUI(cmd *cobra.Command, config uiConfig) *SimpleUI {
	return &SimpleUI{cmd: cmd, levelPrefix: config.levelPrefix}
}

// Start initializes the UI.
func (s *SimpleUI) Start() error {
	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close() error {
	return nil
}

// Println writes the unstyled line, prefixed by its level tag.
func (s *SimpleUI) Println(line m.Line, level m.Level) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := ""
	if s.levelPrefix {
		prefix = "[" + levelTag(level) + "] "
	}

	s.printf("%s%s\n", prefix, line.String())
}

// DisplayTotals prints the run totals as a borderless table.
func (s *SimpleUI) DisplayTotals(totals m.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.printf("\n%s", renderTotalsTable(totals))
}

func renderTotalsTable(totals m.Totals) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Sets", "Tests", "Failures", "Errors", "Skipped", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.Append([]string{
		fmt.Sprintf("%d", totals.Sets),
		fmt.Sprintf("%d", totals.Counts.Completed),
		fmt.Sprintf("%d", totals.Counts.Failures),
		fmt.Sprintf("%d", totals.Counts.Errors),
		fmt.Sprintf("%d", totals.Counts.Skipped),
		m.FormatElapsed(totals.Elapsed) + " s",
	})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
