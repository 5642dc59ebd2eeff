package wishlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	wishdto "grind/internal/modules/wish/dto"
	"grind/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type WishPort interface {
	List(ctx context.Context) ([]wishdto.WishOutput, error)
	NextTarget(ctx context.Context) (wishdto.TargetOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ItemsLoadedMsg struct {
	Items  []wishdto.WishOutput
	Target wishdto.TargetOutput
	Err    error
}

type RefreshMsg struct{}

// ─── list item ───────────────────────────────────────────────────────────────

type wishItem struct {
	item           wishdto.WishOutput
	currencySymbol string
}

func (i wishItem) Title() string {
	if i.item.Redeemed {
		return "✓ " + i.item.Name
	}
	return i.item.Name
}

func (i wishItem) Description() string {
	return fmt.Sprintf("%s%.2f  %.1f pts", i.currencySymbol, i.item.Price, i.item.PointsRequired)
}

func (i wishItem) FilterValue() string { return i.item.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port           WishPort
	currencySymbol string
	list           list.Model
	items          []wishdto.WishOutput
	target         wishdto.TargetOutput
	preview        viewport.Model
	width          int
	height         int
}

func New(port WishPort, currencySymbol string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Wishlist"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, currencySymbol: currencySymbol, list: l, preview: vp}
}

func (m Model) Init() tea.Cmd {
	return m.loadItemsCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RefreshMsg:
		return m, m.loadItemsCmd()

	case ItemsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Wishlist — " + msg.Err.Error()
			return m, nil
		}
		m.items = msg.Items
		m.target = msg.Target
		items := make([]list.Item, len(msg.Items))
		for i, item := range msg.Items {
			items[i] = wishItem{item: item, currencySymbol: m.currencySymbol}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.preview.SetContent(m.renderDetail())
	}

	var lCmd tea.Cmd
	prevIdx := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		m.preview.SetContent(m.renderDetail())
	}

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
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

// SelectedWishID returns the current selection's ID, if any.
func (m Model) SelectedWishID() (int64, bool) {
	if item, ok := m.list.SelectedItem().(wishItem); ok {
		return item.item.ID, true
	}
	return 0, false
}

// Filtering reports whether the list's search filter is currently active.
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
	var sb strings.Builder

	if m.target.Found {
		sb.WriteString(theme.Title.Render("Next target") + "\n")
		sb.WriteString(fmt.Sprintf("%s — %.1f pts to go\n\n", m.target.Item.Name, m.target.PointsNeeded))
	}

	item, ok := m.selectedItem()
	if !ok {
		sb.WriteString(theme.Muted.Render("Add something to grind for: :wish:add <price> <name>"))
		return sb.String()
	}

	sb.WriteString(theme.Title.Render(item.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("price:  ") + fmt.Sprintf("%s%.2f", m.currencySymbol, item.Price) + "\n")
	sb.WriteString(theme.Muted.Render("points: ") + fmt.Sprintf("%.1f", item.PointsRequired) + "\n")
	if item.URL != "" {
		sb.WriteString(theme.Muted.Render("url:    ") + item.URL + "\n")
	}
	switch {
	case item.Redeemed:
		sb.WriteString(theme.Good.Render("redeemed "+item.RedeemedAt.Format("2 Jan 2006")) + "\n")
	case item.Affordable:
		sb.WriteString(theme.Good.Render("affordable — :wish:redeem") + "\n")
	default:
		sb.WriteString(theme.Muted.Render("keep grinding") + "\n")
	}
	return sb.String()
}

func (m Model) selectedItem() (wishdto.WishOutput, bool) {
	if item, ok := m.list.SelectedItem().(wishItem); ok {
		return item.item, true
	}
	return wishdto.WishOutput{}, false
}

func (m Model) loadItemsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		items, err := m.port.List(ctx)
		if err != nil {
			return ItemsLoadedMsg{Err: err}
		}
		target, err := m.port.NextTarget(ctx)
		return ItemsLoadedMsg{Items: items, Target: target, Err: err}
	}
}
