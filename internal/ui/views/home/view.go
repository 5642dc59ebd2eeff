package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	badgedto "grind/internal/modules/badge/dto"
	sessiondto "grind/internal/modules/session/dto"
	streakdto "grind/internal/modules/streak/dto"
	timerdto "grind/internal/modules/timer/dto"
	"grind/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TimerPort interface {
	Status(ctx context.Context) (timerdto.StatusOutput, error)
}

type StreakPort interface {
	Info(ctx context.Context) (streakdto.StreakInfoOutput, error)
	Message(ctx context.Context, badges []string) (string, error)
	Goals(ctx context.Context) (streakdto.GoalsOutput, error)
}

type ProgressPort interface {
	DayProgress(ctx context.Context, date time.Time) (sessiondto.DayProgressOutput, error)
	TotalPoints(ctx context.Context) (float64, error)
}

type BadgePort interface {
	Highlighted(ctx context.Context) ([]badgedto.BadgeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type tickMsg time.Time

type statusLoadedMsg struct {
	status timerdto.StatusOutput
	err    error
}

type dashboardLoadedMsg struct {
	info        streakdto.StreakInfoOutput
	goals       streakdto.GoalsOutput
	message     string
	day         sessiondto.DayProgressOutput
	highlighted []badgedto.BadgeOutput
	total       float64
	err         error
}

// RefreshMsg asks the view to reload everything; the app model sends it after
// any timer or session mutation.
type RefreshMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	timer    TimerPort
	streak   StreakPort
	progress ProgressPort
	badges   BadgePort
	userName string

	status      timerdto.StatusOutput
	info        streakdto.StreakInfoOutput
	goals       streakdto.GoalsOutput
	message     string
	day         sessiondto.DayProgressOutput
	highlighted []badgedto.BadgeOutput
	total       float64
	loadErr     error

	width  int
	height int
}

func New(timer TimerPort, streak StreakPort, progress ProgressPort, badges BadgePort, userName string) Model {
	return Model{timer: timer, streak: streak, progress: progress, badges: badges, userName: userName}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadStatusCmd(), m.loadDashboardCmd(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.loadStatusCmd(), tick())

	case RefreshMsg:
		return m, tea.Batch(m.loadStatusCmd(), m.loadDashboardCmd())

	case statusLoadedMsg:
		if msg.err == nil {
			m.status = msg.status
		}

	case dashboardLoadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.info = msg.info
			m.goals = msg.goals
			m.message = msg.message
			m.day = msg.day
			m.highlighted = msg.highlighted
			m.total = msg.total
		}
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.loadErr != nil {
		return theme.Warn.Render("dashboard: " + m.loadErr.Error())
	}

	paneW := m.width/2 - 2
	if paneW < 30 {
		paneW = 30
	}

	left := theme.Pane.Width(paneW).Render(m.renderTimer())
	right := theme.Pane.Width(paneW).Render(m.renderStreak())
	top := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	bottom := theme.Pane.Width(m.width - 2).Render(m.renderProgress())
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m Model) renderTimer() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Timer") + "\n\n")

	switch m.status.Status {
	case "RUNNING", "PAUSED":
		sb.WriteString(theme.Hot.Render(formatElapsed(m.status.ElapsedSeconds)) + "\n")
		sb.WriteString(theme.CategoryStyle(m.status.Category).Render(m.status.CategoryLabel) + "\n")
		sb.WriteString(theme.Muted.Render("since ") + m.status.StartTime.Format("15:04") + "\n")
		if m.status.Paused {
			sb.WriteString(theme.Warn.Render("⏸ paused") + "\n")
		}
		if m.status.TotalPausedMinutes > 0 {
			sb.WriteString(theme.Muted.Render(fmt.Sprintf("paused %dm total", m.status.TotalPausedMinutes)) + "\n")
		}
		sb.WriteString("\n" + theme.Muted.Render("p:pause  r:resume  x:stop"))
	default:
		sb.WriteString(theme.Muted.Render("no session running") + "\n\n")
		sb.WriteString(theme.Muted.Render("s:start a session"))
	}
	return sb.String()
}

func (m Model) renderStreak() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Streak") + "\n\n")

	flame := "🔥"
	if m.info.CurrentStreak == 0 {
		flame = "·"
	}
	sb.WriteString(fmt.Sprintf("%s %d days\n", flame, m.info.CurrentStreak))

	switch {
	case m.info.AtRisk && m.info.Grace.HoursRemaining > 0:
		sb.WriteString(theme.Warn.Render(fmt.Sprintf("⚠ %dh %dm of grace left",
			m.info.Grace.HoursRemaining, m.info.Grace.MinutesRemaining)) + "\n")
	case m.info.Grace.Urgent:
		sb.WriteString(theme.Warn.Render(fmt.Sprintf("grace running out: %dh left", m.info.Grace.HoursRemaining)) + "\n")
	}

	if m.message != "" {
		sb.WriteString("\n" + m.message + "\n")
	}

	if len(m.highlighted) > 0 {
		sb.WriteString("\n")
		parts := make([]string, len(m.highlighted))
		for i, b := range m.highlighted {
			parts[i] = b.Icon + " " + b.Name
		}
		sb.WriteString(theme.Muted.Render(strings.Join(parts, "  ")))
	}
	return sb.String()
}

func (m Model) renderProgress() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Today") + "  ")
	sb.WriteString(theme.Muted.Render(m.userName) + "  ")
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("%.1f pts total", m.total)) + "\n\n")

	dayJobGoal := int64(m.goals.DayJobHours * 60)
	sideGoal := int64(m.goals.SideWorkHours * 60)

	sb.WriteString(progressLine("Day job  ", m.day.DayJobMinutes, dayJobGoal, "DAY_JOB"))
	sb.WriteString(progressLine("Side work", m.day.SideWorkMinutes, sideGoal, "SIDE_WORK"))
	sb.WriteString(progressLine("Early    ", m.day.EarlyMorningMinutes, 0, "EARLY_MORNING"))
	return sb.String()
}

func progressLine(label string, minutes, goalMinutes int64, category string) string {
	style := theme.CategoryStyle(category)
	line := style.Render(label) + "  " + formatMinutes(minutes)
	if goalMinutes > 0 {
		line += theme.Muted.Render(" / "+formatMinutes(goalMinutes)) + "  " + bar(minutes, goalMinutes, style)
	}
	return line + "\n"
}

func bar(minutes, goalMinutes int64, style lipgloss.Style) string {
	const width = 20
	filled := int(minutes * width / goalMinutes)
	if filled > width {
		filled = width
	}
	return style.Render(strings.Repeat("█", filled)) +
		theme.Muted.Render(strings.Repeat("░", width-filled))
}

func formatElapsed(seconds int64) string {
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

func formatMinutes(minutes int64) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.timer.Status(context.Background())
		return statusLoadedMsg{status: status, err: err}
	}
}

func (m Model) loadDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out := dashboardLoadedMsg{}
		if out.info, out.err = m.streak.Info(ctx); out.err != nil {
			return out
		}
		if out.goals, out.err = m.streak.Goals(ctx); out.err != nil {
			return out
		}
		if out.day, out.err = m.progress.DayProgress(ctx, time.Now()); out.err != nil {
			return out
		}
		if out.total, out.err = m.progress.TotalPoints(ctx); out.err != nil {
			return out
		}
		if out.highlighted, out.err = m.badges.Highlighted(ctx); out.err != nil {
			return out
		}
		codes := make([]string, len(out.highlighted))
		for i, b := range out.highlighted {
			codes[i] = b.Code
		}
		out.message, out.err = m.streak.Message(ctx, codes)
		return out
	}
}
