package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	noPrefixLabel     = "No prefix"
	customPrefixLabel = "Custom prefix…"
)

type prefixModel struct {
	list     list.Model
	choice   string
	custom   bool
	quitting bool
}

func (m prefixModel) Init() tea.Cmd {
	return nil
}

func (m prefixModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(prefixItem)
			if ok {
				switch string(i) {
				case noPrefixLabel:
					m.choice = ""
				case customPrefixLabel:
					m.custom = true
				default:
					m.choice = string(i)
				}
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m prefixModel) View() string {
	return m.list.View()
}

type prefixItem string

func (i prefixItem) FilterValue() string { return string(i) }

type prefixDelegate struct{}

func (d prefixDelegate) Height() int                             { return 1 }
func (d prefixDelegate) Spacing() int                            { return 0 }
func (d prefixDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d prefixDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(prefixItem)
	if !ok {
		return
	}

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + s[0])
		}
	}
	fmt.Fprint(w, fn(string(i)))
}

// SelectPrefix shows the configured prefixes plus "no prefix" and
// "custom prefix" entries and returns the chosen prefix ("" for none).
func SelectPrefix(prefixes []string) (string, error) {
	items := make([]list.Item, 0, len(prefixes)+2)
	for _, p := range prefixes {
		items = append(items, prefixItem(p))
	}
	items = append(items, prefixItem(noPrefixLabel), prefixItem(customPrefixLabel))

	const defaultWidth = 40

	l := list.New(items, prefixDelegate{}, defaultWidth, listHeight)
	l.Title = "Select a prefix for your commit message"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	finalModel, err := tea.NewProgram(prefixModel{list: l}).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prefix picker: %w", err)
	}

	m, ok := finalModel.(prefixModel)
	if !ok || m.quitting {
		return "", nil
	}

	if m.custom {
		return EditMessage("")
	}
	return m.choice, nil
}
