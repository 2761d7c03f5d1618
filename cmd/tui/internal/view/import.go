package view

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/sapataria/internal/importer"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	path       string

	specs   []inventory.NewProduct
	preview table.Model

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, dark bool) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	theme := ThemeFor(dark)

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Produto", Width: 32},
			{Title: "SKU", Width: 14},
			{Title: "Venda", Width: 12},
			{Title: "Custo", Width: 12},
			{Title: "Qtd", Width: 6},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(theme.TableStyles())

	return ImportModel{
		CommonModel:   CommonModel{Theme: theme},
		importService: impSvc,
		filePicker:    fp,
		preview:       t,
	}
}

func (m ImportModel) Title() string { return "Importar catálogo" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStatePreview:
		return "Enter: importar | Esc: cancelar"
	case importStateResult:
		return "Esc: voltar"
	}

	return "Esc: voltar | Enter: selecionar"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.Theme = ThemeFor(msg.DarkMode)
		m.preview.SetStyles(m.Theme.TableStyles())

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Erro ao ler %s: %v", m.path, msg.err)

			return m, nil
		}

		if len(msg.specs) == 0 {
			m.state = importStateResult
			m.status = "Nenhum produto encontrado na planilha."

			return m, nil
		}

		m.specs = msg.specs
		m.state = importStatePreview
		m.refreshPreview()

		return m, nil

	case importDoneMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Erro: %v (%d de %d produtos importados)", msg.err, msg.count, len(m.specs))

			return m, nil
		}

		m.status = fmt.Sprintf("%d produtos importados.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.path = path
		m.status = fmt.Sprintf("Lendo %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.specs = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	case importStateParsing, importStateImporting:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importando %d produtos...", len(m.specs))

		return m, m.importCmd(m.specs)
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	t := m.Theme

	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Selecione a planilha (CSV com cabeçalho nome;sku;preco_venda;preco_custo;quantidade\n" +
				"ou modelo;cores;tamanhos;preco_venda;preco_custo;quantidade):\n\n" +
				m.filePicker.View(),
		)
	case importStateParsing, importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("%s: %s", m.path, t.Active(fmt.Sprintf("%d produtos", len(m.specs)))),
			"",
			t.Box().Render(m.preview.View()),
			t.Faint("Cada produto lança uma despesa de custo inicial."),
		))
	case importStateResult:
		status := t.Ok(m.status)
		if m.err != nil {
			status = t.Err(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render(status + "\n\n(Esc para voltar)")
	}

	return ""
}

func (m *ImportModel) refreshPreview() {
	rows := make([]table.Row, 0, len(m.specs))
	for _, np := range m.specs {
		rows = append(rows, table.Row{
			np.Name,
			np.SKU,
			FormatAmount(np.SalePrice),
			FormatAmount(np.CostPrice),
			strconv.Itoa(np.StockQuantity),
		})
	}

	m.preview.SetRows(rows)
	m.preview.SetCursor(0)
}

// Messages

type parseResultMsg struct {
	specs []inventory.NewProduct
	err   error
}

type importDoneMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		specs, err := svc.Parse(importer.FormatCatalog, f)

		return parseResultMsg{specs: specs, err: err}
	}
}

func (m ImportModel) importCmd(specs []inventory.NewProduct) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		added, err := svc.Add(ctx, specs)

		return importDoneMsg{count: len(added), err: err}
	}
}
