package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/databydepew/git-auto-commit/internal/utils"
)

// Spinner shows progress while the completion request is in flight. In a
// non-TTY environment it degrades to a single printed line.
type Spinner struct {
	program  *tea.Program
	doneChan chan struct{}
	isTTY    bool
}

type spinnerModel struct {
	spinner spinner.Model
	text    string
	done    bool
}

type spinnerDoneMsg struct{}

func NewSpinner() *Spinner {
	return &Spinner{
		doneChan: make(chan struct{}),
		isTTY:    utils.IsTTY(),
	}
}

func (s *Spinner) Start(message string) {
	if !s.isTTY {
		fmt.Println(message)
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	s.program = tea.NewProgram(spinnerModel{spinner: sp, text: message})
	go func() {
		if _, err := s.program.Run(); err != nil {
			log.Error().Err(err).Msg("Error running spinner")
		}
		close(s.doneChan)
	}()
}

func (s *Spinner) Stop() {
	if !s.isTTY || s.program == nil {
		return
	}
	s.program.Send(spinnerDoneMsg{})
	<-s.doneChan
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		}
		return m, nil
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("\n  %s %s\n", m.spinner.View(), m.text)
}
