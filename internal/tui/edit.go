package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type editModel struct {
	input     textinput.Model
	submitted bool
}

func (m editModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			m.submitted = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m editModel) View() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		titleStyle.Render("Edit commit message:"),
		m.input.View(),
		helpStyle.Render("enter: confirm • esc: keep original"),
	)
}

// EditMessage opens a one-line editor seeded with the candidate and
// returns the replacement text. Escaping or submitting an empty line
// returns "".
func EditMessage(candidate string) (string, error) {
	input := textinput.New()
	input.SetValue(candidate)
	input.CursorEnd()
	input.Focus()
	input.CharLimit = 0
	input.Width = 72

	finalModel, err := tea.NewProgram(editModel{input: input}).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run message editor: %w", err)
	}

	m, ok := finalModel.(editModel)
	if !ok || !m.submitted {
		return "", nil
	}
	return strings.TrimSpace(m.input.Value()), nil
}
