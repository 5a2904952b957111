package prompts

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/reminder"
)

// ActMsg runs the primary action of a prompt and dismisses it
type ActMsg struct {
	Key string
}

type DismissMsg struct {
	Key string
}

type Item struct {
	Prompt reminder.Prompt
}

func (i Item) Title() string {
	switch i.Prompt.Severity {
	case models.PriorityHigh:
		return "‼ " + i.Prompt.Title
	case models.PriorityLow:
		return "· " + i.Prompt.Title
	}
	return "• " + i.Prompt.Title
}

func (i Item) Description() string {
	if i.Prompt.Action != nil {
		return i.Prompt.Body + "  [" + i.Prompt.Action.Label + "]"
	}
	return i.Prompt.Body
}

func (i Item) FilterValue() string { return i.Prompt.Title }

type KeyMap struct {
	Act     key.Binding
	Dismiss key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Act: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run action"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "dismiss"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Reminders"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Act, keys.Dismiss}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Act, keys.Dismiss}
	}

	return Model{list: l, keys: keys}
}

// Push adds p to the top of the list. A prompt with the same key replaces
// the earlier one.
func (m *Model) Push(p reminder.Prompt) tea.Cmd {
	m.Remove(p.Key)
	return m.list.InsertItem(0, Item{Prompt: p})
}

// Remove drops the prompt with key and reports whether it was present
func (m *Model) Remove(key string) (reminder.Prompt, bool) {
	for i, it := range m.list.Items() {
		item := it.(Item)
		if item.Prompt.Key == key {
			m.list.RemoveItem(i)
			return item.Prompt, true
		}
	}
	return reminder.Prompt{}, false
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		item, selected := m.list.SelectedItem().(Item)
		switch {
		case key.Matches(msg, m.keys.Act) && selected:
			return m, func() tea.Msg { return ActMsg{Key: item.Prompt.Key} }
		case key.Matches(msg, m.keys.Dismiss) && selected:
			return m, func() tea.Msg { return DismissMsg{Key: item.Prompt.Key} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
