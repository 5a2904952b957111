// Package tui is the interactive front end of "focusflow run --tui". It
// shows reminder prompts as they fire, today's habits and the notification
// inbox, and asks before a newer remote snapshot replaces local data.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/cloudsync"
	"github.com/julianstephens/focusflow/internal/reminder"
	"github.com/julianstephens/focusflow/internal/state"
	"github.com/julianstephens/focusflow/internal/tui/components/habits"
	"github.com/julianstephens/focusflow/internal/tui/components/inbox"
	"github.com/julianstephens/focusflow/internal/tui/components/prompts"
	"github.com/julianstephens/focusflow/internal/utils"
)

type SessionState int

const (
	StatePrompts SessionState = iota
	StateHabits
	StateInbox
	StateConfirmSync
)

var tabTitles = []string{"Reminders", "Habits", "Inbox"}

// PromptMsg carries a prompt fired by the reminder engine
type PromptMsg struct {
	Prompt reminder.Prompt
}

// StoreChangedMsg asks the model to re-read the store
type StoreChangedMsg struct {
	Change state.Change
}

// OfferMsg asks the user to accept or dismiss a remote snapshot. The answer
// is sent on Reply exactly once.
type OfferMsg struct {
	Offer cloudsync.Offer
	Reply chan<- bool
}

// WarnMsg surfaces a non-fatal background failure
type WarnMsg struct {
	Err error
}

type Model struct {
	store         *state.Store
	clock         func() time.Time
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	promptsModel  prompts.Model
	habitsModel   habits.Model
	inboxModel    inbox.Model
	offer         *OfferMsg
	warning       string
	quitting      bool
	width         int
	height        int
}

func NewModel(store *state.Store, clock func() time.Time) Model {
	if clock == nil {
		clock = time.Now
	}
	now := clock()
	return Model{
		store:        store,
		clock:        clock,
		state:        StatePrompts,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		promptsModel: prompts.New(0, 0),
		habitsModel:  habits.New(store.Habits(), utils.DayIndex(now), 0, 0),
		inboxModel:   inbox.New(store.Notifications(), 0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == StateConfirmSync {
		return []key.Binding{m.keys.Accept, m.keys.Decline}
	}
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StatePrompts:
		pk := prompts.DefaultKeyMap()
		actions = []key.Binding{pk.Act, pk.Dismiss}
	case StateHabits:
		actions = []key.Binding{habits.DefaultKeyMap().Toggle}
	case StateInbox:
		ik := inbox.DefaultKeyMap()
		actions = []key.Binding{ik.MarkRead, ik.MarkAllRead, ik.Clear}
	case StateConfirmSync:
		actions = []key.Binding{m.keys.Accept, m.keys.Decline}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh() {
	m.habitsModel.SetHabits(m.store.Habits(), utils.DayIndex(m.clock()))
	m.inboxModel.SetNotifications(m.store.Notifications())
}

// answerOffer replies to a pending offer and leaves the confirm view
func (m *Model) answerOffer(accept bool) {
	if m.offer == nil {
		return
	}
	m.offer.Reply <- accept
	m.offer = nil
	if m.state == StateConfirmSync {
		m.state = m.previousState
	}
}

func (m Model) statusLine() string {
	now := m.clock()
	cfg := m.store.Settings()
	line := fmt.Sprintf("%d unread · %d revisions due · today %s",
		m.store.UnreadCount(), len(m.store.DueRevisions(now)), utils.FormatDuration(cfg.TodayStudyTime))
	if sess, ok := m.store.ActiveSession(); ok {
		line += " · studying " + sess.Subject
	}
	return line
}
