package view

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

// Theme is the palette every screen draws with. The store's dark mode flag picks one.
type Theme struct {
	Dark bool

	Text       lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	SelectedFg lipgloss.Color
	SelectedBg lipgloss.Color
}

var (
	darkTheme = Theme{
		Dark:       true,
		Text:       lipgloss.Color("252"),
		Muted:      lipgloss.Color("245"),
		Border:     lipgloss.Color("240"),
		Accent:     lipgloss.Color("205"),
		Success:    lipgloss.Color("46"),
		Warning:    lipgloss.Color("220"),
		Error:      lipgloss.Color("196"),
		SelectedFg: lipgloss.Color("229"),
		SelectedBg: lipgloss.Color("57"),
	}

	lightTheme = Theme{
		Text:       lipgloss.Color("235"),
		Muted:      lipgloss.Color("242"),
		Border:     lipgloss.Color("250"),
		Accent:     lipgloss.Color("125"),
		Success:    lipgloss.Color("28"),
		Warning:    lipgloss.Color("130"),
		Error:      lipgloss.Color("160"),
		SelectedFg: lipgloss.Color("231"),
		SelectedBg: lipgloss.Color("25"),
	}
)

func ThemeFor(dark bool) Theme {
	if dark {
		return darkTheme
	}

	return lightTheme
}

func (t Theme) TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(t.SelectedFg).
		Background(t.SelectedBg).
		Bold(false)

	return s
}

func (t Theme) Box() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border)
}

// Card frames a single metric with its label.
func (t Theme) Card(label, value string, valueColor lipgloss.Color) string {
	return lipgloss.NewStyle().
		Padding(0, 2).
		Width(22).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Render(
			lipgloss.NewStyle().Foreground(t.Muted).Render(label) + "\n" +
				lipgloss.NewStyle().Bold(true).Foreground(valueColor).Render(value),
		)
}

func (t Theme) Active(s string) string {
	return lipgloss.NewStyle().Foreground(t.Accent).Render(s)
}

func (t Theme) Faint(s string) string {
	return lipgloss.NewStyle().Foreground(t.Muted).Render(s)
}

func (t Theme) Err(s string) string {
	return lipgloss.NewStyle().Foreground(t.Error).Render(s)
}

func (t Theme) Ok(s string) string {
	return lipgloss.NewStyle().Foreground(t.Success).Render(s)
}

// Level renders the stock badge: green above 50 units, yellow above 20, red otherwise.
func (t Theme) Level(p inventory.Product) string {
	var c lipgloss.Color

	switch p.Level() {
	case inventory.StockHigh:
		c = t.Success
	case inventory.StockMedium:
		c = t.Warning
	default:
		c = t.Error
	}

	return lipgloss.NewStyle().Foreground(c).Render(levelLabels[p.Level()])
}

var levelLabels = map[inventory.StockLevel]string{
	inventory.StockHigh:   "alto",
	inventory.StockMedium: "médio",
	inventory.StockLow:    "baixo",
}
