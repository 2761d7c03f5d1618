package view

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/sapataria/internal/export"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
	"github.com/MrJamesThe3rd/sapataria/internal/money"
)

// recentLimit is how many profits and expenses the screen lists, taken from the start of the ledger.
const recentLimit = 5

const exportTimeout = 2 * time.Minute

type financialState int

const (
	financialStateOverview financialState = iota
	financialStateTimeframe
	financialStateExpense
	financialStatePath
	financialStateExporting
)

type FinancialModel struct {
	CommonModel
	exportService *export.Service

	state           financialState
	snap            inventory.Snapshot
	timeframePicker TimeframePicker
	filter          export.Filter
	period          string

	form    *huh.Form
	expense *expenseForm
	path    *string
	spinner spinner.Model

	status string
	err    error
}

func NewFinancialModel(svc *export.Service, snap inventory.Snapshot, exportDir string) FinancialModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return FinancialModel{
		CommonModel:     CommonModel{Theme: ThemeFor(snap.DarkMode)},
		exportService:   svc,
		snap:            snap,
		timeframePicker: NewTimeframePicker(TimeframeAll),
		period:          TimeframeAll.String(),
		path:            &exportDir,
		spinner:         s,
	}
}

func (m FinancialModel) Title() string { return "Financeiro" }

func (m FinancialModel) ShortHelp() string {
	switch m.state {
	case financialStateTimeframe:
		return "Enter: selecionar | Esc: voltar"
	case financialStateExpense, financialStatePath:
		return "Tab/Enter: navegar | Esc: cancelar"
	case financialStateExporting:
		return "Exportando..."
	}

	return "Esc: voltar | t: período | n: nova despesa | x: exportar"
}

func (m FinancialModel) Init() tea.Cmd {
	return nil
}

func (m FinancialModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = msg.Snapshot
		m.Theme = ThemeFor(msg.DarkMode)

		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case TimeframeSelectedMsg:
		m.filter = export.Filter{Start: msg.Start, End: msg.End}
		m.period = msg.Label
		m.state = financialStateOverview
		m.timeframePicker.Reset()

		return m, nil

	case exportResultMsg:
		m.state = financialStateOverview
		m.err = msg.err
		m.status = msg.status

		return m, nil
	}

	switch m.state {
	case financialStateOverview:
		return m.updateOverview(msg)
	case financialStateTimeframe:
		return m.updateTimeframe(msg)
	case financialStateExpense, financialStatePath:
		return m.updateForm(msg)
	case financialStateExporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m FinancialModel) updateOverview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "t":
		m.state = financialStateTimeframe
		return m, nil
	case "n":
		return m.enterExpense()
	case "x":
		return m.enterPath()
	}

	return m, nil
}

func (m FinancialModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = financialStateOverview
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m FinancialModel) enterExpense() (tea.Model, tea.Cmd) {
	m.expense = newExpenseForm(time.Now())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Descrição").
				Value(&m.expense.Description).
				Validate(required),
			huh.NewInput().
				Key("amount").
				Title("Valor").
				Placeholder("0,00").
				Value(&m.expense.Amount).
				Validate(validAmount),
			huh.NewInput().
				Key("date").
				Title("Data").
				Placeholder("DD/MM/AAAA").
				Value(&m.expense.Date),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = financialStateExpense
	m.status = ""
	m.err = nil

	return m, m.form.Init()
}

func (m FinancialModel) enterPath() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Pasta de destino").
				Description("Será criada se não existir").
				Placeholder("./exports").
				Value(m.path).
				Validate(required),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = financialStatePath
	m.status = ""
	m.err = nil

	return m, m.form.Init()
}

func (m FinancialModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = financialStateOverview
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.state = financialStateOverview
		m.form = nil

		return m, nil
	case huh.StateCompleted:
	default:
		return m, cmd
	}

	m.form = nil

	if m.state == financialStatePath {
		m.state = financialStateExporting
		return m, tea.Batch(m.spinner.Tick, m.exportCmd(m.filter, *m.path))
	}

	m.state = financialStateOverview

	// There is no store operation that appends a manual expense; the entry is checked and
	// reported back, never recorded.
	e, err := m.expense.parse()
	if err != nil {
		m.err = err
		return m, nil
	}

	slog.Info("manual expense not recorded", "description", e.Description, "amount", e.Amount.String())
	m.status = fmt.Sprintf("Despesa \"%s\" de %s em %s não foi registrada: lançamentos manuais ainda não são suportados.",
		e.Description, FormatAmount(e.Amount), FormatDate(e.Date))

	return m, nil
}

func (m FinancialModel) View() string {
	switch m.state {
	case financialStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	case financialStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exportando lançamentos...", m.spinner.View()),
		)
	}

	t := m.Theme
	txs := ledger.Between(m.snap.Transactions(), m.filter.Start, m.filter.End)
	sum := ledger.Summarize(txs)

	netColor := t.Success
	if sum.Net.IsNegative() {
		netColor = t.Error
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Card("Receita", FormatAmount(sum.Revenue), t.Success),
		t.Card("Despesas", FormatAmount(sum.Expenses), t.Error),
		t.Card("Lucro líquido", money.FormatSigned(sum.Net), netColor),
		t.Card("Margem", sum.Margin.StringFixed(1)+"%", t.Text),
	)

	recent := lipgloss.JoinHorizontal(lipgloss.Top,
		t.Box().Padding(0, 1).Width(50).Render(
			recentView("Primeiros lucros", ledger.Take(txs, ledger.TypeProfit, recentLimit), t.Success),
		),
		t.Box().Padding(0, 1).Width(50).Render(
			recentView("Primeiras despesas", ledger.Take(txs, ledger.TypeExpense, recentLimit), t.Error),
		),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		"Período: "+t.Active(m.period),
		"",
		cards,
		"",
		recent,
	)

	if m.form != nil {
		title := "Nova despesa"
		if m.state == financialStatePath {
			title = "Exportar lançamentos"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Width(50).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	switch {
	case m.err != nil:
		content = t.Err(fmt.Sprintf("Erro: %v", m.err)) + "\n" + content
	case m.status != "":
		content = t.Faint(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func recentView(title string, txs []ledger.Transaction, amountColor lipgloss.Color) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	if len(txs) == 0 {
		sb.WriteString("Nenhum lançamento.")
		return sb.String()
	}

	amount := lipgloss.NewStyle().Foreground(amountColor)

	for _, tx := range txs {
		fmt.Fprintf(&sb, "%s  %-24s %s\n", FormatDate(tx.Date), truncate(tx.Description, 24), amount.Render(FormatAmount(tx.Amount)))
	}

	return strings.TrimRight(sb.String(), "\n")
}

type exportResultMsg struct {
	status string
	err    error
}

// exportCmd writes the CSV sheet, the PDF report and the text summary of the period into dir.
func (m FinancialModel) exportCmd(filter export.Filter, dir string) tea.Cmd {
	svc := m.exportService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		csvPath, txs, err := svc.Export(ctx, filter, dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		base := strings.TrimSuffix(csvPath, ".csv")

		if err := os.WriteFile(base+".txt", []byte(svc.GenerateSummary(txs)), 0o644); err != nil {
			return exportResultMsg{err: fmt.Errorf("writing summary: %w", err)}
		}

		if err := writeReport(svc, base+".pdf", export.Title(filter), txs); err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{status: fmt.Sprintf("%d lançamentos exportados para %s (.csv, .txt, .pdf)", len(txs), base)}
	}
}

func writeReport(svc *export.Service, path, title string, txs []ledger.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := svc.WritePDF(f, title, txs); err != nil {
		f.Close()
		return fmt.Errorf("rendering report: %w", err)
	}

	return f.Close()
}
