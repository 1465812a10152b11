package help

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Model renders the static key reference. The dashboard embeds it and owns
// dismissal, so there is no Update loop here.
type Model struct {
	width  int
	height int
}

func New() Model {
	return Model{}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		Align(lipgloss.Center).
		MarginBottom(2)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2).
		Align(lipgloss.Center)

	entry := func(k, desc string) string {
		return fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-7s", k)), descStyle.Render(desc))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(width-4).Render("worktime — keys"),
		sectionTitleStyle.Render("Tracking"),
		entry("s", "start a session"),
		entry("p", "pause and record the session"),
		entry("n", "store session and start a new one"),
		entry("r", "discard the current session"),
		sectionTitleStyle.Render("Periods"),
		entry("← →", "select period (today, this week, last week, this month, total)"),
		entry("e", "overwrite the selected period with a duration"),
		entry("a", "adjust the selected period to a duration"),
		entry("x", "reset the selected period"),
		entry("d", "delete all of today's entries"),
		sectionTitleStyle.Render("Screens"),
		entry("v", "day details"),
		entry("o", "settings"),
		entry("?", "this screen"),
		entry("q", "quit"),
		footerStyle.Width(width-4).Render("Press esc or ? to go back"),
	)

	return containerStyle.Render(content)
}
