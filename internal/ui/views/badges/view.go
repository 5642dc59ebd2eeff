package badges

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	badgedto "grind/internal/modules/badge/dto"
	"grind/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type BadgePort interface {
	Catalog(ctx context.Context) ([]badgedto.BadgeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CatalogLoadedMsg struct {
	Badges []badgedto.BadgeOutput
	Err    error
}

type RefreshMsg struct{}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    BadgePort
	badges  []badgedto.BadgeOutput
	preview viewport.Model
	loadErr error
	width   int
	height  int
}

func New(port BadgePort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{port: port, preview: vp}
}

func (m Model) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.preview.Width = m.width - 4
		m.preview.Height = m.height - 4

	case RefreshMsg:
		return m, m.loadCatalogCmd()

	case CatalogLoadedMsg:
		m.loadErr = msg.Err
		if msg.Err == nil {
			m.badges = msg.Badges
			m.preview.SetContent(m.renderCatalog())
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loadErr != nil {
		return theme.Warn.Render("badges: " + m.loadErr.Error())
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.preview.View())
}

func (m Model) renderCatalog() string {
	var sb strings.Builder
	earned := 0
	for _, b := range m.badges {
		if b.Earned {
			earned++
		}
	}
	sb.WriteString(theme.Title.Render("Badges") + "  " +
		theme.Muted.Render(fmt.Sprintf("%d/%d earned", earned, len(m.badges))) + "\n\n")

	for _, b := range m.badges {
		marker := theme.Muted.Render("○")
		name := theme.Muted.Render(b.Name)
		if b.Earned {
			marker = theme.Good.Render("●")
			name = lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(b.Name)
		}
		sb.WriteString(marker + " " + b.Icon + " " + name + "\n")
		sb.WriteString("    " + theme.Muted.Render(b.Description))
		if b.Permanent {
			sb.WriteString(theme.Muted.Render("  (permanent)"))
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func (m Model) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		badges, err := m.port.Catalog(context.Background())
		return CatalogLoadedMsg{Badges: badges, Err: err}
	}
}
