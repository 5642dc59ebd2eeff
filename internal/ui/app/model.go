package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	badgedto "grind/internal/modules/badge/dto"
	sessiondto "grind/internal/modules/session/dto"
	streakdto "grind/internal/modules/streak/dto"
	timerdto "grind/internal/modules/timer/dto"
	wishdto "grind/internal/modules/wish/dto"
	"grind/internal/ui/components"
	"grind/internal/ui/theme"
	badgesview "grind/internal/ui/views/badges"
	historyview "grind/internal/ui/views/history"
	homeview "grind/internal/ui/views/home"
	wishlistview "grind/internal/ui/views/wishlist"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages; the app ports are supersets
// so the same handler value can be handed straight down.

type timerPort interface {
	Start(ctx context.Context) (timerdto.StartOutput, error)
	Pause(ctx context.Context) (timerdto.ChangeOutput, error)
	Resume(ctx context.Context) (timerdto.ChangeOutput, error)
	Stop(ctx context.Context) (timerdto.StopOutput, error)
	Status(ctx context.Context) (timerdto.StatusOutput, error)
}

type sessionPort interface {
	Get(ctx context.Context, id int64) (sessiondto.SessionOutput, error)
	ListRecent(ctx context.Context, limit int) ([]sessiondto.SessionOutput, error)
	Edit(ctx context.Context, id int64, start, end time.Time) (sessiondto.SessionOutput, error)
	Delete(ctx context.Context, id int64) error
	TotalPoints(ctx context.Context) (float64, error)
	DayProgress(ctx context.Context, date time.Time) (sessiondto.DayProgressOutput, error)
}

type streakPort interface {
	Info(ctx context.Context) (streakdto.StreakInfoOutput, error)
	Message(ctx context.Context, badges []string) (string, error)
	Goals(ctx context.Context) (streakdto.GoalsOutput, error)
	SetGoals(ctx context.Context, dayJobHours, sideWorkHours float64) error
}

type badgePort interface {
	Highlighted(ctx context.Context) ([]badgedto.BadgeOutput, error)
	Catalog(ctx context.Context) ([]badgedto.BadgeOutput, error)
}

type wishPort interface {
	Add(ctx context.Context, name string, price float64, url string) (wishdto.WishOutput, error)
	List(ctx context.Context) ([]wishdto.WishOutput, error)
	Redeem(ctx context.Context, id int64) (wishdto.WishOutput, error)
	Delete(ctx context.Context, id int64) error
	NextTarget(ctx context.Context) (wishdto.TargetOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabHistory
	tabBadges
	tabWishlist
	tabCount
)

var tabLabels = [tabCount]string{
	"Home", "History", "Badges", "Wishlist",
}

// ─── async messages ───────────────────────────────────────────────────────────

type timerStartedMsg struct {
	out timerdto.StartOutput
	err error
}

type timerChangedMsg struct {
	verb    string
	changed bool
	err     error
}

type timerStoppedMsg struct {
	out timerdto.StopOutput
	err error
}

type sessionEditedMsg struct {
	out sessiondto.SessionOutput
	err error
}

type sessionDeletedMsg struct {
	id  int64
	err error
}

type wishMutatedMsg struct {
	status string
	err    error
}

type goalsSetMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Resume  key.Binding
	Stop    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start timer")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Stop:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Resume, k.Stop},
		{k.Tab, k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the timer keys,
// the global help overlay, and the command palette. All business logic is
// delegated to port interfaces; all rendering is delegated to sub-views.
type Model struct {
	// ports used at this orchestration level only
	timer   timerPort
	session sessionPort
	streak  streakPort
	wish    wishPort

	// sub-views (one per tab)
	homeView    homeview.Model
	historyView historyview.Model
	badgesView  badgesview.Model
	wishView    wishlistview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(
	userName string,
	currencySymbol string,
	timer timerPort,
	session sessionPort,
	streak streakPort,
	badge badgePort,
	wish wishPort,
) Model {
	return Model{
		timer:       timer,
		session:     session,
		streak:      streak,
		wish:        wish,
		homeView:    homeview.New(timer, streak, session, badge, userName),
		historyView: historyview.New(session),
		badgesView:  badgesview.New(badge),
		wishView:    wishlistview.New(wish, currencySymbol),
		activeTab:   tabHome,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.homeView.Init(),
		m.historyView.Init(),
		m.badgesView.Init(),
		m.wishView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case timerStartedMsg:
		switch {
		case msg.err != nil:
			m.status = "timer start failed: " + msg.err.Error()
		case !msg.out.Started:
			m.status = "a timer is already running"
		default:
			m.status = fmt.Sprintf("timer started (%s)", msg.out.Category)
			cmds = append(cmds, m.refreshAll()...)
		}

	case timerChangedMsg:
		switch {
		case msg.err != nil:
			m.status = "timer " + msg.verb + " failed: " + msg.err.Error()
		case !msg.changed:
			m.status = "nothing to " + msg.verb
		default:
			m.status = "timer " + msg.verb + "d"
			cmds = append(cmds, m.refreshAll()...)
		}

	case timerStoppedMsg:
		switch {
		case msg.err != nil:
			m.status = "timer stop failed: " + msg.err.Error()
		case !msg.out.Stopped:
			m.status = "no timer running"
		case msg.out.Discarded:
			m.status = "session under 15 minutes — discarded"
			cmds = append(cmds, m.refreshAll()...)
		default:
			m.status = fmt.Sprintf("session saved: %dm, %.2f pts", msg.out.DurationMinutes, msg.out.Points)
			cmds = append(cmds, m.refreshAll()...)
		}

	case sessionEditedMsg:
		if msg.err != nil {
			m.status = "edit failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("session %d now %.2f pts", msg.out.ID, msg.out.Points)
			cmds = append(cmds, m.refreshAll()...)
		}

	case sessionDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("session %d deleted", msg.id)
			cmds = append(cmds, m.refreshAll()...)
		}

	case wishMutatedMsg:
		if msg.err != nil {
			m.status = "wishlist: " + msg.err.Error()
		} else {
			m.status = msg.status
			cmds = append(cmds, m.refreshAll()...)
		}

	case goalsSetMsg:
		if msg.err != nil {
			m.status = "goals: " + msg.err.Error()
		} else {
			m.status = "daily goals updated"
			cmds = append(cmds, m.refreshAll()...)
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		case "s":
			if m.activeTab == tabHome {
				cmds = append(cmds, m.startTimerCmd())
			}
		case "p":
			if m.activeTab == tabHome {
				cmds = append(cmds, m.pauseTimerCmd())
			}
		case "r":
			if m.activeTab == tabHome {
				cmds = append(cmds, m.resumeTimerCmd())
			}
		case "x":
			if m.activeTab == tabHome {
				cmds = append(cmds, m.stopTimerCmd())
			}
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabHome:
		m.homeView, tabCmd = m.homeView.Update(msg)
	case tabHistory:
		m.historyView, tabCmd = m.historyView.Update(msg)
	case tabBadges:
		m.badgesView, tabCmd = m.badgesView.Update(msg)
	case tabWishlist:
		m.wishView, tabCmd = m.wishView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabHome:
		return m.homeView.View()
	case tabHistory:
		return m.historyView.View()
	case tabBadges:
		return m.badgesView.View()
	case tabWishlist:
		return m.wishView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "grind  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "timer:start":
		return m, m.startTimerCmd()

	case "timer:pause":
		return m, m.pauseTimerCmd()

	case "timer:resume":
		return m, m.resumeTimerCmd()

	case "timer:stop":
		return m, m.stopTimerCmd()

	case "session:edit":
		if len(parts) < 3 {
			m.status = "usage: session:edit <id> <start HH:MM> [end HH:MM]"
			return m, nil
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			m.status = "invalid session id"
			return m, nil
		}
		endStr := ""
		if len(parts) >= 4 {
			endStr = parts[3]
		}
		return m, m.editSessionCmd(id, parts[2], endStr)

	case "session:delete":
		if len(parts) < 2 {
			m.status = "usage: session:delete <id>"
			return m, nil
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			m.status = "invalid session id"
			return m, nil
		}
		return m, m.deleteSessionCmd(id)

	case "wish:add":
		if len(parts) < 3 {
			m.status = "usage: wish:add <price> <name...>"
			return m, nil
		}
		price, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			m.status = "invalid price"
			return m, nil
		}
		name := strings.TrimSpace(strings.TrimPrefix(input, parts[0]+" "+parts[1]))
		return m, m.addWishCmd(name, price)

	case "wish:redeem":
		id, ok := m.wishView.SelectedWishID()
		if !ok {
			m.status = "no wish selected"
			return m, nil
		}
		m.activeTab = tabWishlist
		return m, m.redeemWishCmd(id)

	case "wish:delete":
		id, ok := m.wishView.SelectedWishID()
		if !ok {
			m.status = "no wish selected"
			return m, nil
		}
		m.activeTab = tabWishlist
		return m, m.deleteWishCmd(id)

	case "goal:set":
		if len(parts) < 3 {
			m.status = "usage: goal:set <day-job-hours> <side-work-hours>"
			return m, nil
		}
		dayJob, err1 := strconv.ParseFloat(parts[1], 64)
		side, err2 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil {
			m.status = "invalid goal hours"
			return m, nil
		}
		return m, m.setGoalsCmd(dayJob, side)

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabHistory:
		return m.historyView.Filtering()
	case tabWishlist:
		return m.wishView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.homeView, _ = m.homeView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
	m.badgesView, _ = m.badgesView.Update(sz)
	m.wishView, _ = m.wishView.Update(sz)
}

// refreshAll asks every sub-view to reload after a mutation. Sub-views that
// are not on the active tab still process the reload commands, so switching
// tabs always shows fresh data.
func (m *Model) refreshAll() []tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.homeView, cmd = m.homeView.Update(homeview.RefreshMsg{})
	cmds = append(cmds, cmd)
	m.historyView, cmd = m.historyView.Update(historyview.RefreshMsg{})
	cmds = append(cmds, cmd)
	m.badgesView, cmd = m.badgesView.Update(badgesview.RefreshMsg{})
	cmds = append(cmds, cmd)
	m.wishView, cmd = m.wishView.Update(wishlistview.RefreshMsg{})
	cmds = append(cmds, cmd)
	return cmds
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) startTimerCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Start(context.Background())
		return timerStartedMsg{out: out, err: err}
	}
}

func (m Model) pauseTimerCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Pause(context.Background())
		return timerChangedMsg{verb: "pause", changed: out.Changed, err: err}
	}
}

func (m Model) resumeTimerCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Resume(context.Background())
		return timerChangedMsg{verb: "resume", changed: out.Changed, err: err}
	}
}

func (m Model) stopTimerCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.timer.Stop(context.Background())
		return timerStoppedMsg{out: out, err: err}
	}
}

// editSessionCmd re-times a session. The clock times apply to the session's
// own day, so a row from this morning can be fixed tonight.
func (m Model) editSessionCmd(id int64, startStr, endStr string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		current, err := m.session.Get(ctx, id)
		if err != nil {
			return sessionEditedMsg{err: err}
		}
		start, err := timeOnDay(current.StartTime, startStr)
		if err != nil {
			return sessionEditedMsg{err: err}
		}
		end := current.EndTime
		if endStr != "" {
			if end, err = timeOnDay(current.StartTime, endStr); err != nil {
				return sessionEditedMsg{err: err}
			}
		}
		out, err := m.session.Edit(ctx, id, start, end)
		return sessionEditedMsg{out: out, err: err}
	}
}

func (m Model) deleteSessionCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.session.Delete(context.Background(), id)
		return sessionDeletedMsg{id: id, err: err}
	}
}

func (m Model) addWishCmd(name string, price float64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.wish.Add(context.Background(), name, price, "")
		if err != nil {
			return wishMutatedMsg{err: err}
		}
		return wishMutatedMsg{status: fmt.Sprintf("added %q (%.1f pts)", out.Name, out.PointsRequired)}
	}
}

func (m Model) redeemWishCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		out, err := m.wish.Redeem(context.Background(), id)
		if err != nil {
			return wishMutatedMsg{err: err}
		}
		return wishMutatedMsg{status: "redeemed: " + out.Name + " 🎉"}
	}
}

func (m Model) deleteWishCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.wish.Delete(context.Background(), id); err != nil {
			return wishMutatedMsg{err: err}
		}
		return wishMutatedMsg{status: "wish removed"}
	}
}

func (m Model) setGoalsCmd(dayJob, side float64) tea.Cmd {
	return func() tea.Msg {
		return goalsSetMsg{err: m.streak.SetGoals(context.Background(), dayJob, side)}
	}
}

// timeOnDay places an HH:MM clock reading on the same calendar day as ref.
func timeOnDay(ref time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: want HH:MM", clock)
	}
	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, ref.Location()), nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
