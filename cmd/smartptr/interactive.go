package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/ownership/demo"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func (a *app) newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Browse the scenarios and run them one at a time",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := tea.NewProgram(newInteractiveModel(a.runDemo), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}

type runFunc func(names ...string) (*demo.Report, error)

type modelState int

const (
	stateSelect modelState = iota
	stateRunning
	stateShowTrace
)

type interactiveModel struct {
	err       error
	run       runFunc
	report    *demo.Report
	scenarios []demo.Scenario
	trace     viewport.Model
	selected  int
	width     int
	height    int
	state     modelState
}

type reportMsg struct {
	err    error
	report *demo.Report
}

func newInteractiveModel(run runFunc) *interactiveModel {
	return &interactiveModel{
		run:       run,
		scenarios: demo.Scenarios(),
		trace:     viewport.New(80, 20),
		state:     stateSelect,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) runSelected() tea.Msg {
	report, err := m.run(m.scenarios[m.selected].Name)
	return reportMsg{report: report, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.trace.Width = msg.Width
		// title, blank line, blank line, help
		m.trace.Height = max(msg.Height-4, 1)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateSelect && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down", "j":
			if m.state == stateSelect && m.selected < len(m.scenarios)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			switch m.state {
			case stateSelect:
				m.state = stateRunning
				return m, m.runSelected
			case stateShowTrace:
				m.back()
				return m, nil
			}

		case "esc":
			if m.state == stateShowTrace {
				m.back()
				return m, nil
			}
		}

	case reportMsg:
		m.err = msg.err
		m.report = msg.report
		m.state = stateShowTrace
		if msg.report != nil {
			m.trace.SetContent(newPalette(io.Discard, true).report(msg.report, true))
			m.trace.GotoTop()
		}
		return m, nil
	}

	if m.state == stateShowTrace {
		var cmd tea.Cmd
		m.trace, cmd = m.trace.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) back() {
	m.state = stateSelect
	m.report = nil
	m.err = nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("smartptr"))
	b.WriteString(" ")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%d scenarios", len(m.scenarios))))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelect:
		b.WriteString("Select a scenario to run:\n\n")
		for i, sc := range m.scenarios {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + sc.Name + "  " + sc.Summary))
			} else {
				b.WriteString("  " + nameStyle.Render(sc.Name) + "  " + summaryStyle.Render(sc.Summary))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter run • q quit"))

	case stateRunning:
		b.WriteString("Running " + nameStyle.Render(m.scenarios[m.selected].Name) + "...")

	case stateShowTrace:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(m.trace.View())
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • enter/esc back • q quit"))
	}

	return b.String()
}
