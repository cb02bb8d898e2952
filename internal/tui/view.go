package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	switch m.state {
	case stateAddHabit:
		return docStyle.Render(m.form.View())
	case stateConfirmArchive:
		return m.viewConfirmArchive()
	default:
		return m.viewToday()
	}
}

func (m Model) viewToday() string {
	header := titleStyle.Render(fmt.Sprintf("ascend · %s", m.today))

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = dimStyle.Render("No habits yet. Press 'a' to add one.")
	}

	sections := []string{header, body}
	if m.statusMsg != "" {
		sections = append(sections, m.statusMsg)
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewConfirmArchive() string {
	habit, ok := m.selectedHabit()
	if !ok {
		return m.viewToday()
	}

	prompt := lipgloss.JoinVertical(lipgloss.Center,
		warningStyle.Render(fmt.Sprintf("Archive habit %q?", habit.Name)),
		"",
		dimStyle.Render("Its history and streak state are kept."),
		"",
		"y: archive    n: cancel",
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, prompt)
}
