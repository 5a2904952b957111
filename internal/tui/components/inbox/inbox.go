package inbox

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
)

type MarkReadMsg struct {
	ID string
}

type MarkAllReadMsg struct{}

type ClearMsg struct{}

type Item struct {
	Notification models.Notification
}

func (i Item) Title() string {
	if i.Notification.Read {
		return "  " + i.Notification.Title
	}
	return "● " + i.Notification.Title
}

func (i Item) Description() string {
	return i.Notification.Time.Local().Format(constants.DateFormat+" "+constants.TimeFormat) + "  " + firstLine(i.Notification.Message)
}

func (i Item) FilterValue() string { return i.Notification.Title }

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}

type KeyMap struct {
	MarkRead    key.Binding
	MarkAllRead key.Binding
	Clear       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		MarkRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "mark read"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "mark all read"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(notifications []models.Notification, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Notifications"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.MarkRead, keys.MarkAllRead}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.MarkRead, keys.MarkAllRead, keys.Clear}
	}

	m := Model{list: l, keys: keys}
	m.SetNotifications(notifications)
	return m
}

// SetNotifications shows the newest notification first
func (m *Model) SetNotifications(notifications []models.Notification) {
	items := make([]list.Item, len(notifications))
	for i, n := range notifications {
		items[len(notifications)-1-i] = Item{Notification: n}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.MarkRead):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return MarkReadMsg{ID: item.Notification.ID} }
			}
		case key.Matches(msg, m.keys.MarkAllRead):
			return m, func() tea.Msg { return MarkAllReadMsg{} }
		case key.Matches(msg, m.keys.Clear):
			return m, func() tea.Msg { return ClearMsg{} }
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
