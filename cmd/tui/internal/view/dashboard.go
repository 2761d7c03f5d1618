package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

// DashboardModel shows stock totals, products running low and the best sellers.
type DashboardModel struct {
	CommonModel
	snap inventory.Snapshot
}

func NewDashboardModel(snap inventory.Snapshot) DashboardModel {
	return DashboardModel{
		CommonModel: CommonModel{Theme: ThemeFor(snap.DarkMode)},
		snap:        snap,
	}
}

func (m DashboardModel) Title() string     { return "Painel" }
func (m DashboardModel) ShortHelp() string { return "Esc: voltar" }

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = msg.Snapshot
		m.Theme = ThemeFor(msg.DarkMode)
	case tea.WindowSizeMsg:
		m.resize(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	t := m.Theme
	totals := m.snap.StockTotals()

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Card("Em estoque", fmt.Sprintf("%d pares", totals.Stock), t.Text),
		t.Card("Vendidos", fmt.Sprintf("%d pares", totals.Sold), t.Text),
		t.Card("Receita", FormatAmount(totals.Revenue), t.Success),
		t.Card("Custo total", FormatAmount(totals.Cost), t.Warning),
	)

	lists := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Box().Padding(0, 1).Width(44).Render(m.lowStockView()),
		t.Box().Padding(0, 1).Width(44).Render(m.topSellersView()),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, cards, "", lists),
	)
}

func (m DashboardModel) lowStockView() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Estoque baixo") + "\n\n")

	low := m.snap.LowStock()
	if len(low) == 0 {
		sb.WriteString(m.Theme.Faint("Nenhum produto abaixo de 20 unidades."))
		return sb.String()
	}

	for _, p := range low {
		fmt.Fprintf(&sb, "%-30s %s\n", truncate(p.Name, 30), m.Theme.Level(p)+fmt.Sprintf(" %d", p.StockQuantity))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) topSellersView() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Mais vendidos") + "\n\n")

	top := m.snap.TopSellers()
	if len(top) == 0 {
		sb.WriteString(m.Theme.Faint("Nenhum produto cadastrado."))
		return sb.String()
	}

	for i, p := range top {
		fmt.Fprintf(&sb, "%d. %-28s %d vendidos\n", i+1, truncate(p.Name, 28), p.SoldQuantity)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
