package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/models"
)

// ToggleHabitMsg flips today's completion for a habit
type ToggleHabitMsg struct {
	ID string
}

type Item struct {
	Habit    models.Habit
	IsMarked bool
}

func (i Item) Title() string {
	if i.IsMarked {
		return "✓ " + i.Habit.Title
	}
	return "○ " + i.Habit.Title
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%d day streak", i.Habit.Streak)
	if i.Habit.ReminderTime != "" {
		desc += " · reminder at " + i.Habit.ReminderTime
	}
	if i.IsMarked {
		return desc + " · completed today"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "toggle today"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	today int
}

func New(habits []models.Habit, today, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle}
	}

	m := Model{list: l, keys: keys}
	m.SetHabits(habits, today)
	return m
}

// SetHabits refreshes the list. today is the weekday index used for the
// completion mark.
func (m *Model) SetHabits(habits []models.Habit, today int) {
	m.today = today
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h, IsMarked: h.DoneOn(today)}
	}
	m.list.SetItems(items)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Toggle) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Add one with 'focusflow habit add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
