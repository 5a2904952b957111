package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StatePrompts:
		content = m.viewPrompts()
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateInbox:
		content = docStyle.Render(m.inboxModel.View())
	case StateConfirmSync:
		content = m.viewConfirmSync()
	}

	var banner string
	if m.warning != "" {
		banner = bannerStyle.Render("⚠ " + m.warning)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		statusStyle.Render(m.statusLine()),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		switch SessionState(i) {
		case StatePrompts:
			if n := m.promptsModel.Len(); n > 0 {
				title = fmt.Sprintf("%s (%d)", title, n)
			}
		case StateInbox:
			if n := m.store.UnreadCount(); n > 0 {
				title = fmt.Sprintf("%s (%d)", title, n)
			}
		}
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewPrompts() string {
	if m.promptsModel.Len() == 0 {
		return docStyle.Render("Nothing due right now.")
	}
	return docStyle.Render(m.promptsModel.View())
}

func (m Model) viewConfirmSync() string {
	if m.offer == nil {
		return ""
	}
	source := m.offer.Offer.Device
	if source == "" {
		source = "another device"
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			warningStyle.Render("A newer version of your data is available"),
			fmt.Sprintf("from %s, saved %s", source, m.offer.Offer.LastUpdated),
			"Loading it replaces everything on this device.",
			"",
			"[enter] Load Update",
			"[esc] Dismiss",
		),
	)
}
