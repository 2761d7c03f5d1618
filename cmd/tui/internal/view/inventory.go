package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/label"
)

type inventoryState int

const (
	inventoryStateBrowse inventoryState = iota
	inventoryStateSearch
	inventoryStateAdd
	inventoryStateEdit
	inventoryStateConfirm
)

type pendingAction int

const (
	actionDelete pendingAction = iota
	actionSell
)

type confirmation struct {
	action pendingAction
	id     uuid.UUID
	name   string
	ok     bool
}

type InventoryModel struct {
	CommonModel
	store    *inventory.Store
	labelDir string

	state  inventoryState
	snap   inventory.Snapshot
	rows   []inventory.Product
	table  table.Model
	search textinput.Model
	form   *huh.Form

	variant *variantForm
	edit    *productForm
	editID  uuid.UUID
	confirm *confirmation

	status string
	err    error
}

func NewInventoryModel(store *inventory.Store, snap inventory.Snapshot, labelDir string) InventoryModel {
	columns := []table.Column{
		{Title: "Produto", Width: 32},
		{Title: "SKU", Width: 14},
		{Title: "Venda", Width: 12},
		{Title: "Custo", Width: 12},
		{Title: "Estoque", Width: 8},
		{Title: "Vendidos", Width: 9},
		{Title: "Nível", Width: 7},
		{Title: "Status", Width: 9},
	}

	theme := ThemeFor(snap.DarkMode)

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	t.SetStyles(theme.TableStyles())

	si := textinput.New()
	si.Placeholder = "nome ou SKU"
	si.Prompt = "Buscar: "
	si.CharLimit = 40

	m := InventoryModel{
		CommonModel: CommonModel{Theme: theme},
		store:       store,
		labelDir:    labelDir,
		snap:        snap,
		table:       t,
		search:      si,
	}
	m.refreshTable()

	return m
}

func (m InventoryModel) Title() string { return "Estoque" }

func (m InventoryModel) ShortHelp() string {
	switch m.state {
	case inventoryStateSearch:
		return "Enter: aplicar | Esc: limpar"
	case inventoryStateAdd, inventoryStateEdit, inventoryStateConfirm:
		return "Tab/Enter: navegar | Esc: cancelar"
	}

	return "Esc: voltar | /: buscar | a: adicionar | e: editar | s: vender | x: excluir | l: etiqueta | L: etiquetas"
}

func (m InventoryModel) Init() tea.Cmd {
	return nil
}

func (m InventoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.snap = msg.Snapshot
		m.Theme = ThemeFor(msg.DarkMode)
		m.table.SetStyles(m.Theme.TableStyles())
		m.refreshTable()

		return m, nil

	case inventoryDoneMsg:
		m.status = msg.status
		m.err = msg.err

		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg)
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case inventoryStateBrowse:
		return m.updateBrowse(msg)
	case inventoryStateSearch:
		return m.updateSearch(msg)
	case inventoryStateAdd, inventoryStateEdit, inventoryStateConfirm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m InventoryModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.refreshTable()

				return m, nil
			}

			return m, Back
		case "/":
			m.state = inventoryStateSearch
			m.table.Blur()
			cmd := m.search.Focus()

			return m, cmd
		case "a":
			return m.enterAdd()
		case "e":
			return m.enterEdit()
		case "s":
			return m.enterConfirm(actionSell)
		case "x":
			return m.enterConfirm(actionDelete)
		case "l":
			if p, ok := m.selected(); ok {
				return m, m.labelsCmd([]inventory.Product{p})
			}

			return m, nil
		case "L":
			return m, m.labelsCmd(m.unsold())
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InventoryModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.state = inventoryStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEsc:
			m.state = inventoryStateBrowse
			m.search.SetValue("")
			m.search.Blur()
			m.table.Focus()
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshTable()

	return m, cmd
}

func (m InventoryModel) enterAdd() (tea.Model, tea.Cmd) {
	m.variant = &variantForm{Quantity: "0"}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Modelo").
				Placeholder("Chinelo").
				Value(&m.variant.Name).
				Validate(required),
			huh.NewInput().
				Key("sale").
				Title("Preço de venda").
				Placeholder("19,90").
				Value(&m.variant.SalePrice).
				Validate(validAmount),
			huh.NewInput().
				Key("cost").
				Title("Preço de custo").
				Placeholder("8,00").
				Value(&m.variant.CostPrice).
				Validate(validAmount),
			huh.NewInput().
				Key("quantity").
				Title("Quantidade por variante").
				Value(&m.variant.Quantity).
				Validate(validQuantity),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Key("sizes").
				Title("Tamanhos").
				Options(huh.NewOptions(inventory.Sizes...)...).
				Value(&m.variant.Sizes).
				Validate(atLeastOne("tamanho")),
			huh.NewMultiSelect[string]().
				Key("colors").
				Title("Cores").
				Options(huh.NewOptions(inventory.Colors...)...).
				Value(&m.variant.Colors).
				Validate(atLeastOne("cor")),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateAdd
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) enterEdit() (tea.Model, tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.edit = newProductForm(p)
	m.editID = p.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Nome").
				Value(&m.edit.Name).
				Validate(required),
			huh.NewInput().
				Key("sku").
				Title("SKU").
				Value(&m.edit.SKU),
			huh.NewInput().
				Key("sale").
				Title("Preço de venda").
				Value(&m.edit.SalePrice).
				Validate(validAmount),
			huh.NewInput().
				Key("cost").
				Title("Preço de custo").
				Value(&m.edit.CostPrice).
				Validate(validAmount),
			huh.NewInput().
				Key("stock").
				Title("Estoque").
				Value(&m.edit.Stock).
				Validate(validQuantity),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateEdit
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) enterConfirm(action pendingAction) (tea.Model, tea.Cmd) {
	p, ok := m.selected()
	if !ok {
		return m, nil
	}

	if action == actionSell && p.IsSold {
		m.status = fmt.Sprintf("%s já foi vendido.", p.Name)
		return m, nil
	}

	m.confirm = &confirmation{action: action, id: p.ID, name: p.Name}

	title := fmt.Sprintf("Excluir %s?", p.Name)
	desc := "As movimentações já lançadas são mantidas."

	if action == actionSell {
		title = fmt.Sprintf("Marcar %s como vendido?", p.Name)
		desc = fmt.Sprintf("%d pares. Lucro lançado: %s.",
			p.StockQuantity, FormatAmount(p.SalePrice.Sub(p.CostPrice)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Affirmative("Sim").
				Negative("Não").
				Value(&m.confirm.ok),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = inventoryStateConfirm
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m InventoryModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveForm(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.leaveForm(), nil
	case huh.StateCompleted:
	default:
		return m, cmd
	}

	var submit tea.Cmd

	switch m.state {
	case inventoryStateAdd:
		submit = m.addCmd()
	case inventoryStateEdit:
		submit = m.updateCmd()
	case inventoryStateConfirm:
		if m.confirm.ok {
			submit = m.confirmCmd()
		}
	}

	return m.leaveForm(), submit
}

func (m InventoryModel) leaveForm() InventoryModel {
	m.state = inventoryStateBrowse
	m.form = nil
	m.table.Focus()

	return m
}

func (m InventoryModel) View() string {
	t := m.Theme

	header := fmt.Sprintf("%d produtos", len(m.rows))
	if term := m.search.Value(); term != "" || m.state == inventoryStateSearch {
		header = fmt.Sprintf("%s | %s", m.search.View(), t.Active(header))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		t.Box().Render(m.table.View()),
	)

	if m.form != nil {
		titles := map[inventoryState]string{
			inventoryStateAdd:     "Novo produto (uma variante por cor e tamanho)",
			inventoryStateEdit:    "Editar produto",
			inventoryStateConfirm: "Confirmar",
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Width(50).
			Render(titles[m.state] + "\n\n" + m.form.View())

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

func (m *InventoryModel) refreshTable() {
	m.rows = m.snap.Search(m.search.Value())

	rows := make([]table.Row, 0, len(m.rows))
	for _, p := range m.rows {
		status := "ativo"
		if p.IsSold {
			status = "vendido"
		}

		rows = append(rows, table.Row{
			p.Name,
			p.SKU,
			FormatAmount(p.SalePrice),
			FormatAmount(p.CostPrice),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.SoldQuantity),
			levelLabels[p.Level()],
			status,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m InventoryModel) selected() (inventory.Product, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return inventory.Product{}, false
	}

	return m.rows[idx], true
}

func (m InventoryModel) unsold() []inventory.Product {
	var out []inventory.Product

	for _, p := range m.rows {
		if !p.IsSold {
			out = append(out, p)
		}
	}

	return out
}

// Messages

type inventoryDoneMsg struct {
	status string
	err    error
}

func (m InventoryModel) addCmd() tea.Cmd {
	req, err := m.variant.request()
	if err != nil {
		return func() tea.Msg { return inventoryDoneMsg{err: err} }
	}

	store := m.store

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		specs := req.Expand()
		for i, np := range specs {
			if _, err := store.AddProduct(ctx, np); err != nil {
				return inventoryDoneMsg{err: fmt.Errorf("cadastrando variante %d de %d: %w", i+1, len(specs), err)}
			}
		}

		return inventoryDoneMsg{status: fmt.Sprintf("%d variantes de %s cadastradas.", len(specs), req.Name)}
	}
}

func (m InventoryModel) updateCmd() tea.Cmd {
	patch, err := m.edit.patch()
	if err != nil {
		return func() tea.Msg { return inventoryDoneMsg{err: err} }
	}

	store, id := m.store, m.editID

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := store.UpdateProduct(ctx, id, patch); err != nil {
			return inventoryDoneMsg{err: err}
		}

		return inventoryDoneMsg{status: "Produto atualizado."}
	}
}

func (m InventoryModel) confirmCmd() tea.Cmd {
	store, c := m.store, *m.confirm

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if c.action == actionSell {
			if err := store.MarkAsSold(ctx, c.id); err != nil {
				return inventoryDoneMsg{err: err}
			}

			return inventoryDoneMsg{status: fmt.Sprintf("%s vendido.", c.name)}
		}

		if err := store.DeleteProduct(ctx, c.id); err != nil {
			return inventoryDoneMsg{err: err}
		}

		return inventoryDoneMsg{status: fmt.Sprintf("%s excluído.", c.name)}
	}
}

func (m InventoryModel) labelsCmd(products []inventory.Product) tea.Cmd {
	dir := m.labelDir

	return func() tea.Msg {
		path, err := writeLabels(dir, products, time.Now())
		if err != nil {
			return inventoryDoneMsg{err: err}
		}

		return inventoryDoneMsg{status: fmt.Sprintf("%d etiquetas salvas em %s", len(products), path)}
	}
}

func writeLabels(dir string, products []inventory.Product, now time.Time) (string, error) {
	if len(products) == 0 {
		return "", label.ErrNoProducts
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating label directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("etiquetas_%s.pdf", now.Format("20060102-150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := label.PDF(f, products, label.DefaultLayout); err != nil {
		f.Close()
		os.Remove(path)

		return "", fmt.Errorf("rendering labels: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}
