package controller

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	m "github.com/mouse-blink/treeport/internal/model"
)

// TUI implements UI with lipgloss styling. The report is collected until
// Close; when it is interactive and taller than the terminal it is shown in
// a bubbletea pager, otherwise it is printed as is.
type TUI struct {
	output      io.Writer
	interactive bool
	levelPrefix bool
	styles      styles
	mu          sync.Mutex
	lines       []string
	runPager    func(model tea.Model) error
	height      func() int
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer, interactive bool, options ...Option) *TUI {
	config := defaultUIConfig()
	for _, opt := range options {
		opt(&config)
	}

	return newTUI(output, interactive, config)
}

func newTUI(output io.Writer, interactive bool, config uiConfig) *TUI {
	renderer := lipgloss.NewRenderer(output)
	if !interactive {
		// Color was forced for a non-terminal writer.
		renderer.SetColorProfile(termenv.ANSI256)
	}

	t := &TUI{
		output:      output,
		interactive: interactive,
		levelPrefix: config.levelPrefix,
		styles:      newStyles(renderer, config.palette),
	}
	t.runPager = t.startPager
	t.height = t.terminalHeight

	return t
}

// Start initializes the UI.
func (t *TUI) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lines = t.lines[:0]

	return nil
}

// Println styles line and queues it for output.
func (t *TUI) Println(line m.Line, level m.Level) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prefix := ""
	if t.levelPrefix {
		prefix = t.styles.renderPrefix(level)
	}

	t.lines = append(t.lines, prefix+t.styles.renderLine(line))
}

// DisplayTotals queues the run totals table, its header colored by level.
func (t *TUI) DisplayTotals(totals m.Totals) {
	t.mu.Lock()
	defer t.mu.Unlock()

	title := t.styles.levels[totals.Level()].Render("Results:")
	table := strings.TrimRight(renderTotalsTable(totals), "\n")

	t.lines = append(t.lines, "", title)
	t.lines = append(t.lines, strings.Split(table, "\n")...)
}

// Close writes the collected report.
func (t *TUI) Close() error {
	t.mu.Lock()
	content := strings.Join(t.lines, "\n")
	count := len(t.lines)
	t.lines = nil
	t.mu.Unlock()

	if count == 0 {
		return nil
	}

	if t.interactive && count >= t.height() {
		return t.runPager(newPagerModel(content))
	}

	_, err := fmt.Fprintln(t.output, content)

	return err
}

func (t *TUI) startPager(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// terminalHeight returns the height of the output terminal, or a value no
// report reaches when the size is unknown.
func (t *TUI) terminalHeight() int {
	if f, ok := t.output.(*os.File); ok {
		_, height, err := term.GetSize(int(f.Fd()))
		if err == nil && height > 0 {
			return height
		}
	}

	return int(^uint(0) >> 1)
}
