package view

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/label"
	"github.com/MrJamesThe3rd/sapataria/internal/storage/file"
)

func newTestStore(t *testing.T) *inventory.Store {
	t.Helper()

	repo, err := file.New(t.TempDir())
	require.NoError(t, err)

	store, err := inventory.NewStore(context.Background(), repo)
	require.NoError(t, err)

	return store
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInventoryModel_FollowsSnapshots(t *testing.T) {
	store := newTestStore(t)
	m := NewInventoryModel(store, store.Snapshot(), t.TempDir())

	_, ok := m.selected()
	assert.False(t, ok)

	for _, name := range []string{"Chinelo", "Bota"} {
		_, err := store.AddProduct(context.Background(), inventory.NewProduct{Name: name, StockQuantity: 3})
		require.NoError(t, err)
	}

	updated, _ := m.Update(SnapshotMsg{Snapshot: store.Snapshot()})
	m = updated.(InventoryModel)

	require.Len(t, m.rows, 2)

	p, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "Chinelo", p.Name)
}

func TestInventoryModel_Search(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"Chinelo", "Bota"} {
		_, err := store.AddProduct(context.Background(), inventory.NewProduct{Name: name})
		require.NoError(t, err)
	}

	m := NewInventoryModel(store, store.Snapshot(), t.TempDir())

	updated, _ := m.Update(key("/"))
	m = updated.(InventoryModel)
	assert.Equal(t, inventoryStateSearch, m.state)

	updated, _ = m.Update(key("bo"))
	m = updated.(InventoryModel)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Bota", m.rows[0].Name)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(InventoryModel)
	assert.Equal(t, inventoryStateBrowse, m.state)
	assert.Len(t, m.rows, 2)
}

func TestInventoryModel_SellAlreadySold(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.AddProduct(ctx, inventory.NewProduct{Name: "Chinelo", StockQuantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.MarkAsSold(ctx, p.ID))

	m := NewInventoryModel(store, store.Snapshot(), t.TempDir())

	updated, cmd := m.Update(key("s"))
	m = updated.(InventoryModel)

	assert.Nil(t, cmd)
	assert.Nil(t, m.form)
	assert.Contains(t, m.status, "já foi vendido")
}

func TestInventoryModel_ConfirmCmdSells(t *testing.T) {
	store := newTestStore(t)

	p, err := store.AddProduct(context.Background(), inventory.NewProduct{
		Name: "Chinelo", SalePrice: decimal.NewFromInt(10), CostPrice: decimal.NewFromInt(4), StockQuantity: 2,
	})
	require.NoError(t, err)

	m := NewInventoryModel(store, store.Snapshot(), t.TempDir())
	m.confirm = &confirmation{action: actionSell, id: p.ID, name: p.Name, ok: true}

	msg := m.confirmCmd()().(inventoryDoneMsg)
	require.NoError(t, msg.err)

	got, err := store.Product(p.ID)
	require.NoError(t, err)
	assert.True(t, got.IsSold)
	assert.Equal(t, 2, got.SoldQuantity)
	require.Len(t, store.Transactions(), 2)
	assert.True(t, store.Transactions()[1].Amount.Equal(decimal.NewFromInt(6)))
}

func TestInventoryModel_AddCmdExpandsVariants(t *testing.T) {
	store := newTestStore(t)

	m := NewInventoryModel(store, store.Snapshot(), t.TempDir())
	m.variant = &variantForm{
		Name: "Chinelo", SalePrice: "20", CostPrice: "8", Quantity: "10",
		Sizes: []string{"35/36", "37/38"}, Colors: []string{"Preto"},
	}

	msg := m.addCmd()().(inventoryDoneMsg)
	require.NoError(t, msg.err)

	products := store.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "CHI-PRE-3536", products[0].SKU)
	assert.Equal(t, "CHI-PRE-3738", products[1].SKU)
}

func TestWriteLabels(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)

	_, err := writeLabels(dir, nil, now)
	require.ErrorIs(t, err, label.ErrNoProducts)

	path, err := writeLabels(dir, []inventory.Product{{Name: "Chinelo", SKU: "CHI-AZU-3536"}}, now)
	require.NoError(t, err)
	assert.Contains(t, path, "etiquetas_20240310-143000.pdf")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF-")))
}
