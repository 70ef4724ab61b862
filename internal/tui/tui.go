// Package tui implements the interactive surfaces: the confirmation
// menu, the free-text message editor, and the prefix picker. All of it
// requires a TTY; callers degrade to plain output otherwise.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const listHeight = 14

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	messageStyle      = lipgloss.NewStyle().MarginLeft(2).Foreground(lipgloss.Color("229"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
)

// Action is the user's choice at the confirmation menu.
type Action int

const (
	ActionCommit Action = iota
	ActionEdit
	ActionCopy
	ActionCancel
)

// Decision carries the chosen action and the final message, which
// differs from the candidate only after an edit.
type Decision struct {
	Action  Action
	Message string
}

type item struct {
	title  string
	action Action
}

func (i item) FilterValue() string { return i.title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(i.title))
}

type confirmModel struct {
	list      list.Model
	candidate string
	choice    Action
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch keypress := msg.String(); keypress {
		case "q", "ctrl+c":
			m.choice = ActionCancel
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(item)
			if ok {
				m.choice = i.action
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		titleStyle.Render("Generated commit message:"),
		messageStyle.Render(m.candidate),
		m.list.View(),
	)
}

// Confirm shows the candidate with the accept/edit/copy/cancel menu and
// returns the user's decision. Choosing edit opens the editor seeded
// with the candidate; an empty edit re-opens the menu.
func Confirm(candidate string) (Decision, error) {
	for {
		action, err := confirmOnce(candidate)
		if err != nil {
			return Decision{}, err
		}

		if action != ActionEdit {
			return Decision{Action: action, Message: candidate}, nil
		}

		edited, err := EditMessage(candidate)
		if err != nil {
			return Decision{}, err
		}
		if edited != "" {
			return Decision{Action: ActionCommit, Message: edited}, nil
		}
		// Empty edit: fall through and ask again.
	}
}

func confirmOnce(candidate string) (Action, error) {
	items := []list.Item{
		item{title: "Commit this", action: ActionCommit},
		item{title: "Edit message", action: ActionEdit},
		item{title: "Copy to clipboard and exit", action: ActionCopy},
		item{title: "Cancel", action: ActionCancel},
	}

	const defaultWidth = 40

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Proceed with this commit message?"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	m := confirmModel{list: l, candidate: candidate}

	finalModel, err := tea.NewProgram(m).Run()
	if err != nil {
		return ActionCancel, fmt.Errorf("failed to run confirmation prompt: %w", err)
	}

	result, ok := finalModel.(confirmModel)
	if !ok {
		return ActionCancel, nil
	}
	return result.choice, nil
}
