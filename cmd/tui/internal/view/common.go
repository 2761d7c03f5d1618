package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

// View is implemented by every screen reachable from the menu.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

type CommonModel struct {
	Width  int
	Height int
	Theme  Theme
}

func (c *CommonModel) resize(msg tea.WindowSizeMsg) {
	c.Width = msg.Width
	c.Height = msg.Height
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SnapshotMsg carries a store version pushed by inventory.Store.Subscribe. Screens re-render
// from it instead of querying the store.
type SnapshotMsg struct {
	inventory.Snapshot
}
