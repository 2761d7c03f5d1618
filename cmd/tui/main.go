package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/sapataria/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/sapataria/internal/config"
	"github.com/MrJamesThe3rd/sapataria/internal/export"
	"github.com/MrJamesThe3rd/sapataria/internal/importer"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/storage/file"
)

type model struct {
	store *inventory.Store
	name  string

	currentView View
	snap        inventory.Snapshot
	err         error

	dashboardView view.DashboardModel
	inventoryView view.InventoryModel
	financialView view.FinancialModel
	importView    view.ImportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewInventory View = 2
	ViewFinancial View = 3
	ViewImport    View = 4
)

type toggleResultMsg struct {
	err error
}

func newModel(cfg *config.Config, store *inventory.Store, snap inventory.Snapshot) model {
	impSvc := importer.NewService(store)
	expSvc := export.NewService(store)

	return model{
		store:         store,
		name:          cfg.App.Name,
		currentView:   ViewMenu,
		snap:          snap,
		dashboardView: view.NewDashboardModel(snap),
		inventoryView: view.NewInventoryModel(store, snap, cfg.Storage.ExportDir),
		financialView: view.NewFinancialModel(expSvc, snap, cfg.Storage.ExportDir),
		importView:    view.NewImportModel(impSvc, snap.DarkMode),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case view.SnapshotMsg, tea.WindowSizeMsg:
		if s, ok := msg.(view.SnapshotMsg); ok {
			m.snap = s.Snapshot
		}

		return m.broadcast(msg)

	case toggleResultMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewInventory:
		var newModel tea.Model
		newModel, cmd = m.inventoryView.Update(msg)
		m.inventoryView = newModel.(view.InventoryModel)
	case ViewFinancial:
		var newModel tea.Model
		newModel, cmd = m.financialView.Update(msg)
		m.financialView = newModel.(view.FinancialModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.currentView = ViewDashboard
		return m, m.dashboardView.Init()
	case "2":
		m.currentView = ViewInventory
		return m, m.inventoryView.Init()
	case "3":
		m.currentView = ViewFinancial
		return m, m.financialView.Init()
	case "4":
		m.currentView = ViewImport
		return m, m.importView.Init()
	case "d":
		return m, m.toggleDarkModeCmd()
	}

	return m, nil
}

// broadcast hands store versions and resizes to every screen, visible or not.
func (m model) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds     []tea.Cmd
		cmd      tea.Cmd
		newModel tea.Model
	)

	newModel, cmd = m.dashboardView.Update(msg)
	m.dashboardView = newModel.(view.DashboardModel)
	cmds = append(cmds, cmd)

	newModel, cmd = m.inventoryView.Update(msg)
	m.inventoryView = newModel.(view.InventoryModel)
	cmds = append(cmds, cmd)

	newModel, cmd = m.financialView.Update(msg)
	m.financialView = newModel.(view.FinancialModel)
	cmds = append(cmds, cmd)

	newModel, cmd = m.importView.Update(msg)
	m.importView = newModel.(view.ImportModel)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) toggleDarkModeCmd() tea.Cmd {
	store := m.store

	return func() tea.Msg {
		ctx, cancel := view.StoreCtx()
		defer cancel()

		return toggleResultMsg{err: store.ToggleDarkMode(ctx)}
	}
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return m.menuView()
	case ViewDashboard:
		current = m.dashboardView
	case ViewInventory:
		current = m.inventoryView
	case ViewFinancial:
		current = m.financialView
	case ViewImport:
		current = m.importView
	}

	if current == nil {
		return "Tela desconhecida"
	}

	theme := view.ThemeFor(m.snap.DarkMode)
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).PaddingLeft(1).Render(current.Title())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		current.View(),
		lipgloss.NewStyle().PaddingLeft(1).Render(theme.Faint(current.ShortHelp())),
	)
}

func (m model) menuView() string {
	theme := view.ThemeFor(m.snap.DarkMode)

	mode := "claro"
	if m.snap.DarkMode {
		mode = "escuro"
	}

	s := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Render(m.name) + "\n\n" +
		"1. Painel\n" +
		"2. Estoque\n" +
		"3. Financeiro\n" +
		"4. Importar catálogo\n\n" +
		"d. Tema: " + mode + "\n" +
		"q. Sair"

	if m.err != nil {
		s += "\n\n" + theme.Err("Erro: "+m.err.Error())
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI: logs go to LOG_FILE or nowhere.
	logOut := io.Discard

	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "sapataria")
		if err != nil {
			slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
			os.Exit(1)
		}
		defer f.Close()

		logOut = f
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug})))

	repo, err := file.New(cfg.Storage.DataDir)
	if err != nil {
		slog.Error("failed to open data dir", "dir", cfg.Storage.DataDir, "error", err)
		os.Exit(1)
	}

	store, err := inventory.NewStore(context.Background(), repo)
	if err != nil {
		slog.Error("failed to load inventory", "error", err)
		os.Exit(1)
	}

	var p *tea.Program

	// Mutations run in tea commands, so p is assigned before the first notification.
	current, unsubscribe := store.Subscribe(func(s inventory.Snapshot) {
		p.Send(view.SnapshotMsg{Snapshot: s})
	})
	defer unsubscribe()

	p = tea.NewProgram(newModel(cfg, store, current), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
