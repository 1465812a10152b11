package stats

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/worktime/internal/models"
	"github.com/adibhanna/worktime/internal/report"
	"github.com/adibhanna/worktime/internal/tracker"
)

// Model is the per-day entry list: every session of a chosen calendar day,
// or a single summary row when the day was overwritten by an edit.
type Model struct {
	tracker  *tracker.Tracker
	settings models.Settings
	day      time.Time
	width    int
	height   int
}

func New(trk *tracker.Tracker, settings models.Settings) Model {
	return Model{
		tracker:  trk,
		settings: settings,
		day:      time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Prev):
			m.day = m.day.AddDate(0, 0, -1)
			return m, nil
		case key.Matches(msg, keys.Next):
			m.day = m.day.AddDate(0, 0, 1)
			return m, nil
		case key.Matches(msg, keys.Today):
			m.day = time.Now()
			return m, nil
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(1)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		MarginBottom(1)

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	negativeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B"))

	editedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F7DC6F")).
		Italic(true)

	totalStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#04B575")).
		MarginTop(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	entries := m.tracker.EntriesForDay(m.day)

	var rows []string
	switch {
	case m.tracker.IsDayManuallyEdited(m.day):
		d := entries[0].Duration(time.Now())
		rows = append(rows, editedStyle.Render(
			fmt.Sprintf("changed by user — %s", report.FormatDurationCompact(d))))
	case len(entries) == 0:
		rows = append(rows, rowStyle.Render("no entries"))
	default:
		now := time.Now()
		for _, e := range entries {
			d := e.Duration(now)
			end := "…"
			if e.EndDate != nil {
				end = report.FormatClock(*e.EndDate, m.settings.Use24HourFormat)
			}
			line := fmt.Sprintf("%s – %s   %s",
				report.FormatClock(e.StartDate, m.settings.Use24HourFormat),
				end,
				report.FormatDurationCompact(d),
			)
			if d < 0 {
				rows = append(rows, negativeStyle.Render(line+"  (adjustment)"))
			} else {
				rows = append(rows, rowStyle.Render(line))
			}
		}
	}

	var total time.Duration
	now := time.Now()
	for _, e := range entries {
		total += e.Duration(now)
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render(m.day.Format("Monday, January 2, 2006")),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		totalStyle.Render(fmt.Sprintf("total: %s", report.FormatDurationCompact(total))),
		helpStyle.Render("← → change day • t today • esc back"),
	)

	return containerStyle.Render(content)
}

type keyMap struct {
	Prev  key.Binding
	Next  key.Binding
	Today key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous day"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next day"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
