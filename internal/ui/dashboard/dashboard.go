package dashboard

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adibhanna/worktime/internal/models"
	"github.com/adibhanna/worktime/internal/report"
	"github.com/adibhanna/worktime/internal/tracker"
	"github.com/adibhanna/worktime/internal/ui/help"
)

type tickMsg time.Time

type mode int

const (
	modeNormal mode = iota
	modeEditPeriod
	modeAdjustPeriod
	modeConfirmResetPeriod
	modeConfirmDeleteDay
	modeConfirmResetSession
	modeHelp
)

var periods = []models.Period{
	models.Today,
	models.ThisWeek,
	models.LastWeek,
	models.ThisMonth,
	models.Total,
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(1, 3).
			MarginBottom(1)

	trackingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	idleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FDFF8C")).
				Bold(true)

	editedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666")).
			MarginTop(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDFF8C")).
			MarginTop(1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
)

type Model struct {
	tracker  *tracker.Tracker
	settings models.Settings
	mode     mode
	cursor   int
	input    textinput.Model
	errorMsg string
	width    int
	height   int

	helpModel help.Model

	shouldQuit   bool
	openSettings bool
	openDayStats bool
}

func New(trk *tracker.Tracker, settings models.Settings) Model {
	input := textinput.New()
	input.Placeholder = "8:00"
	input.CharLimit = 9
	input.Width = 12

	return Model{
		tracker:   trk,
		settings:  settings,
		input:     input,
		helpModel: help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.tracker.Tick()
		return m, tickCmd()

	case tea.KeyMsg:
		switch m.mode {
		case modeEditPeriod, modeAdjustPeriod:
			return m.updateInput(msg)
		case modeConfirmResetPeriod, modeConfirmDeleteDay, modeConfirmResetSession:
			return m.updateConfirm(msg)
		case modeHelp:
			if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) || key.Matches(msg, keys.Quit) {
				m.mode = modeNormal
			}
			return m, nil
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Start):
		m.tracker.Start()
		return m, nil

	case key.Matches(msg, keys.Pause):
		m.tracker.Pause()
		return m, nil

	case key.Matches(msg, keys.New):
		m.tracker.RecordAndRestart()
		return m, nil

	case key.Matches(msg, keys.ResetSession):
		m.mode = modeConfirmResetSession
		return m, nil

	case key.Matches(msg, keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Right):
		if m.cursor < len(periods)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Edit):
		m.mode = modeEditPeriod
		m.errorMsg = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Adjust):
		m.mode = modeAdjustPeriod
		m.errorMsg = ""
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.ResetPeriod):
		m.mode = modeConfirmResetPeriod
		return m, nil

	case key.Matches(msg, keys.DeleteDay):
		m.mode = modeConfirmDeleteDay
		return m, nil

	case key.Matches(msg, keys.DayStats):
		m.openDayStats = true
		return m, tea.Quit

	case key.Matches(msg, keys.Settings):
		m.openSettings = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Confirm):
		d, err := parseDuration(m.input.Value())
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if m.mode == modeEditPeriod {
			m.tracker.EditPeriod(m.selectedPeriod(), d)
		} else {
			m.tracker.AdjustPeriod(m.selectedPeriod(), d)
		}
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.mode {
		case modeConfirmResetPeriod:
			m.tracker.ResetPeriod(m.selectedPeriod())
		case modeConfirmDeleteDay:
			m.tracker.DeleteDay(time.Now())
		case modeConfirmResetSession:
			m.tracker.Reset()
		}
		m.mode = modeNormal
	case "n", "N", "esc":
		m.mode = modeNormal
	}
	return m, nil
}

func (m Model) selectedPeriod() models.Period {
	return periods[m.cursor]
}

// parseDuration accepts "H:MM" or plain hours ("7" or "7.5").
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("enter a duration like 8:00")
	}
	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		hours, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, fmt.Errorf("invalid hours: %s", parts[0])
		}
		mins, err := strconv.Atoi(parts[1])
		if err != nil || mins < 0 || mins > 59 {
			return 0, fmt.Errorf("invalid minutes: %s", parts[1])
		}
		return time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute, nil
	}
	hours, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	return time.Duration(hours * float64(time.Hour)), nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == modeHelp {
		return m.helpModel.View()
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(1)

	var status string
	if m.tracker.IsRunning() {
		status = trackingStyle.Render("● TRACKING")
	} else {
		status = idleStyle.Render("■ IDLE")
	}

	today := report.FormatDuration(m.tracker.Accumulated() + m.tracker.Elapsed())

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		titleStyle.Render("worktime"),
		"",
		timerStyle.Render(m.tracker.CurrentElapsedDisplay()),
		status,
		helpStyle.Render(fmt.Sprintf("today so far: %s", today)),
		"",
		m.renderPeriods(),
		helpStyle.Render(fmt.Sprintf("rate %.2f/h • week starts %s",
			m.settings.HourlyRate, time.Weekday(m.settings.WeekStartDay-1))),
		m.renderPrompt(),
		helpStyle.Render("s start • p pause • n store+restart • e edit • a adjust • ? help • q quit"),
	)

	return containerStyle.Render(content)
}

func (m Model) renderPeriods() string {
	rows := []string{
		fmt.Sprintf("  %-12s %12s %9s %12s", "PERIOD", "DURATION", "HOURS", "EARNINGS"),
	}

	for i, p := range periods {
		line := fmt.Sprintf("  %-12s %12s %9.2f %11.2f ",
			p.String(),
			m.tracker.FormattedDuration(p),
			m.tracker.TotalHours(p),
			m.tracker.Earnings(p),
		)
		if i == m.cursor {
			line = selectedRowStyle.Render("▸" + line[1:])
		}
		rows = append(rows, line)
	}

	if m.tracker.IsDayManuallyEdited(time.Now()) {
		rows = append(rows, editedStyle.Render("  today was changed by user"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case modeEditPeriod:
		prompt := fmt.Sprintf("set %s to: %s", m.selectedPeriod(), m.input.View())
		if m.errorMsg != "" {
			prompt += "  " + errStyle.Render(m.errorMsg)
		}
		return promptStyle.Render(prompt)
	case modeAdjustPeriod:
		prompt := fmt.Sprintf("adjust %s to: %s", m.selectedPeriod(), m.input.View())
		if m.errorMsg != "" {
			prompt += "  " + errStyle.Render(m.errorMsg)
		}
		return promptStyle.Render(prompt)
	case modeConfirmResetPeriod:
		return promptStyle.Render(fmt.Sprintf("reset %s? (y/n)", m.selectedPeriod()))
	case modeConfirmDeleteDay:
		return promptStyle.Render("delete all of today's entries? (y/n)")
	case modeConfirmResetSession:
		return promptStyle.Render("discard the current session? (y/n)")
	}
	return ""
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) ShouldOpenSettings() bool {
	return m.openSettings
}

func (m Model) ShouldOpenDayStats() bool {
	return m.openDayStats
}

type keyMap struct {
	Start        key.Binding
	Pause        key.Binding
	New          key.Binding
	ResetSession key.Binding
	Left         key.Binding
	Right        key.Binding
	Edit         key.Binding
	Adjust       key.Binding
	ResetPeriod  key.Binding
	DeleteDay    key.Binding
	DayStats     key.Binding
	Settings     key.Binding
	Help         key.Binding
	Confirm      key.Binding
	Back         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	Start: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start"),
	),
	Pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "store and start new"),
	),
	ResetSession: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset session"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "previous period"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "next period"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit period"),
	),
	Adjust: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "adjust period"),
	),
	ResetPeriod: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "reset period"),
	),
	DeleteDay: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete today"),
	),
	DayStats: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "day details"),
	),
	Settings: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "settings"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
