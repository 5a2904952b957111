package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/focusflow/internal/tui/components/habits"
	"github.com/julianstephens/focusflow/internal/tui/components/inbox"
	"github.com/julianstephens/focusflow/internal/tui/components/prompts"
	"github.com/julianstephens/focusflow/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := docStyle.GetFrameSize()
		contentHeight := msg.Height - v - 4
		m.promptsModel.SetSize(msg.Width-h, contentHeight)
		m.habitsModel.SetSize(msg.Width-h, contentHeight)
		m.inboxModel.SetSize(msg.Width-h, contentHeight)
		m.help.Width = msg.Width
		return m, nil

	case PromptMsg:
		cmd := m.promptsModel.Push(msg.Prompt)
		return m, cmd

	case prompts.ActMsg:
		if p, ok := m.promptsModel.Remove(msg.Key); ok && p.Action != nil {
			p.Action.Run()
		}
		m.refresh()
		return m, nil

	case prompts.DismissMsg:
		m.promptsModel.Remove(msg.Key)
		return m, nil

	case habits.ToggleHabitMsg:
		m.store.ToggleHabitDay(msg.ID, utils.DayIndex(m.clock()))
		m.refresh()
		return m, nil

	case inbox.MarkReadMsg:
		m.store.MarkNotificationRead(msg.ID)
		m.refresh()
		return m, nil

	case inbox.MarkAllReadMsg:
		m.store.MarkAllNotificationsRead()
		m.refresh()
		return m, nil

	case inbox.ClearMsg:
		m.store.ClearNotifications()
		m.refresh()
		return m, nil

	case StoreChangedMsg:
		m.refresh()
		return m, nil

	case OfferMsg:
		// A newer offer supersedes one still waiting for an answer
		m.answerOffer(false)
		offer := msg
		m.offer = &offer
		m.previousState = m.state
		m.state = StateConfirmSync
		return m, nil

	case WarnMsg:
		if msg.Err != nil {
			m.warning = msg.Err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.answerOffer(false)
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == StateConfirmSync {
			switch {
			case key.Matches(msg, m.keys.Accept):
				m.answerOffer(true)
			case key.Matches(msg, m.keys.Decline):
				m.answerOffer(false)
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
			m.warning = ""
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
			m.warning = ""
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StatePrompts:
		m.promptsModel, cmd = m.promptsModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	case StateInbox:
		m.inboxModel, cmd = m.inboxModel.Update(msg)
	}
	return m, cmd
}
