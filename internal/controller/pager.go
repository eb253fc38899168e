package controller

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pagerModel shows a finished report that does not fit the terminal.
type pagerModel struct {
	content  string
	viewport viewport.Model
	ready    bool
	footer   lipgloss.Style
}

func newPagerModel(content string) pagerModel {
	return pagerModel{
		content: content,
		footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - 1 // footer line
		if height < 1 {
			height = 1
		}

		if !p.ready {
			p.viewport = viewport.New(msg.Width, height)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = height
		}

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd

	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	if !p.ready {
		return ""
	}

	footer := p.footer.Render(fmt.Sprintf("%3.f%%  q to quit", p.viewport.ScrollPercent()*100))

	return p.viewport.View() + "\n" + footer
}
