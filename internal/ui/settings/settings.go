package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/worktime/internal/models"
	"github.com/adibhanna/worktime/internal/storage"
)

type Model struct {
	storage    *storage.Store
	settings   models.Settings
	inputs     []textinput.Model
	focusIndex int
	saved      bool
	errorMsg   string
	width      int
	height     int
}

var labels = []string{
	"Hourly rate",
	"Week starts on (1=Sun .. 7=Sat)",
	"Clock format (12 or 24)",
}

func New(store *storage.Store) (Model, error) {
	settings, err := store.GetSettings()
	if err != nil {
		return Model{}, err
	}

	inputs := make([]textinput.Model, 3)

	numericValidation := func(text string) error {
		if text == "" {
			return nil
		}
		for _, char := range text {
			if (char < '0' || char > '9') && char != '.' {
				return fmt.Errorf("only numbers allowed")
			}
		}
		return nil
	}

	inputs[0] = textinput.New()
	inputs[0].Placeholder = "50"
	inputs[0].SetValue(strconv.FormatFloat(settings.HourlyRate, 'f', -1, 64))
	inputs[0].Focus()
	inputs[0].CharLimit = 8
	inputs[0].Width = 20
	inputs[0].Validate = numericValidation

	inputs[1] = textinput.New()
	inputs[1].Placeholder = "2"
	inputs[1].SetValue(strconv.Itoa(settings.WeekStartDay))
	inputs[1].CharLimit = 1
	inputs[1].Width = 20
	inputs[1].Validate = numericValidation

	clockFormat := "24"
	if !settings.Use24HourFormat {
		clockFormat = "12"
	}
	inputs[2] = textinput.New()
	inputs[2].Placeholder = "24"
	inputs[2].SetValue(clockFormat)
	inputs[2].CharLimit = 2
	inputs[2].Width = 20
	inputs[2].Validate = numericValidation

	return Model{
		storage:  store,
		settings: settings,
		inputs:   inputs,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.focusIndex++
			if m.focusIndex > len(m.inputs)-1 {
				m.focusIndex = 0
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.focusIndex--
			if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs) - 1
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.Save):
			if err := m.saveSettings(); err != nil {
				m.errorMsg = err.Error()
				return m, nil
			}
			m.saved = true
			return m, tea.Quit

		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) updateFocus() Model {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m *Model) saveSettings() error {
	rate, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[0].Value()), 64)
	if err != nil || rate < 0 {
		return fmt.Errorf("hourly rate must be a non-negative number")
	}

	weekStart, err := strconv.Atoi(strings.TrimSpace(m.inputs[1].Value()))
	if err != nil || weekStart < 1 || weekStart > 7 {
		return fmt.Errorf("week start day must be 1..7")
	}

	clockFormat := strings.TrimSpace(m.inputs[2].Value())
	if clockFormat != "12" && clockFormat != "24" {
		return fmt.Errorf("clock format must be 12 or 24")
	}

	m.settings = models.Settings{
		HourlyRate:      rate,
		WeekStartDay:    weekStart,
		Use24HourFormat: clockFormat == "24",
	}
	return m.storage.SaveSettings(m.settings)
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
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1).
		MarginBottom(2)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	focusedLabelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		Bold(true)

	errStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginTop(1)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	var fields []string
	for i, input := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focusIndex {
			label = focusedLabelStyle.Render(labels[i])
		}
		fields = append(fields, fmt.Sprintf("%s\n%s", label, input.View()))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		fields...,
	)

	parts := []string{
		titleStyle.Render("Settings"),
		content,
	}
	if m.errorMsg != "" {
		parts = append(parts, errStyle.Render(m.errorMsg))
	}
	parts = append(parts, helpStyle.Render("tab/↑↓: navigate • ctrl+s: save • esc: cancel"))

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m Model) Saved() bool {
	return m.saved
}

// Settings returns the last saved values.
func (m Model) Settings() models.Settings {
	return m.settings
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Save     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s", "enter"),
		key.WithHelp("ctrl+s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
