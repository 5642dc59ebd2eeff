package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "grind/internal/modules/session/dto"
	"grind/internal/ui/theme"
)

const recentLimit = 100

// ─── port ────────────────────────────────────────────────────────────────────

type SessionPort interface {
	ListRecent(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error)
	Get(ctx context.Context, id int64) (sessiondto.SessionOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type SessionsLoadedMsg struct {
	Sessions []sessiondto.SessionOutput
	Err      error
}

type DetailLoadedMsg struct {
	Detail sessiondto.SessionOutput
	Err    error
}

// RefreshMsg reloads the list after an edit, delete, or stop.
type RefreshMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session sessiondto.SessionOutput
}

func (i sessionItem) Title() string {
	return fmt.Sprintf("%s  %s", i.session.StartTime.Format("Mon 02 Jan 15:04"), i.session.CategoryLabel)
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%dm  %.2f pts", i.session.DurationMinutes, i.session.Points)
}

func (i sessionItem) FilterValue() string {
	return i.session.StartTime.Format("2006-01-02") + " " + i.session.CategoryLabel
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    SessionPort
	list    list.Model
	detail  sessiondto.SessionOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port SessionPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "History"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessionsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RefreshMsg:
		return m, m.loadSessionsCmd()

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "History — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Sessions) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Sessions[0].ID))
		} else {
			m.detail = sessiondto.SessionOutput{}
			m.preview.SetContent(m.renderDetail())
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			if item, ok := m.list.SelectedItem().(sessionItem); ok {
				cmds = append(cmds, m.loadDetailCmd(item.session.ID))
			}
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading history…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedSessionID returns the current selection's ID, if any.
func (m Model) SelectedSessionID() (int64, bool) {
	if item, ok := m.list.SelectedItem().(sessionItem); ok {
		return item.session.ID, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == 0 {
		return theme.Muted.Render("Select a session to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.StartTime.Format("Monday 2 January")) + "\n\n")
	sb.WriteString(theme.Muted.Render("start:    ") + d.StartTime.Format("15:04") + "\n")
	if d.Completed {
		sb.WriteString(theme.Muted.Render("end:      ") + d.EndTime.Format("15:04") + "\n")
	} else {
		sb.WriteString(theme.Muted.Render("end:      ") + theme.Hot.Render("running") + "\n")
	}
	sb.WriteString(theme.Muted.Render("category: ") + theme.CategoryStyle(d.Category).Render(d.CategoryLabel) + "\n")
	sb.WriteString(theme.Muted.Render("duration: ") + fmt.Sprintf("%dm", d.DurationMinutes) + "\n")
	sb.WriteString(theme.Muted.Render("points:   ") + fmt.Sprintf("%.2f", d.Points) + "\n")
	if d.TotalPausedMinutes > 0 {
		sb.WriteString(theme.Muted.Render("paused:   ") + fmt.Sprintf("%dm", d.TotalPausedMinutes) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("edits allowed today only — use :session:edit"))
	return sb.String()
}

func (m Model) loadSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		sessions, err := m.port.ListRecent(context.Background(), recentLimit)
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}

func (m Model) loadDetailCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.Get(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
