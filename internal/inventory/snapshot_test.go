package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

func seed(t *testing.T, products ...inventory.NewProduct) *inventory.Store {
	t.Helper()

	s := newStore(t, newMemRepo())
	for _, np := range products {
		_, err := s.AddProduct(context.Background(), np)
		require.NoError(t, err)
	}

	return s
}

func TestSnapshot_StockTotals(t *testing.T) {
	s := seed(t,
		inventory.NewProduct{Name: "Chinelo", SalePrice: decimal.NewFromInt(20), CostPrice: decimal.NewFromInt(8), StockQuantity: 10},
		inventory.NewProduct{Name: "Bota", SalePrice: decimal.NewFromInt(100), CostPrice: decimal.NewFromInt(60), StockQuantity: 3},
	)

	require.NoError(t, s.MarkAsSold(context.Background(), s.Products()[0].ID))

	totals := s.Snapshot().StockTotals()
	assert.Equal(t, 13, totals.Stock)
	assert.Equal(t, 10, totals.Sold)
	// 20 x 10
	assert.True(t, totals.Revenue.Equal(decimal.NewFromInt(200)), "revenue %s", totals.Revenue)
	// 8 x (10+10) + 60 x 3
	assert.True(t, totals.Cost.Equal(decimal.NewFromInt(340)), "cost %s", totals.Cost)
}

func TestSnapshot_StockTotalsEmpty(t *testing.T) {
	totals := seed(t).Snapshot().StockTotals()

	assert.Zero(t, totals.Stock)
	assert.True(t, totals.Revenue.IsZero())
	assert.True(t, totals.Cost.IsZero())
}

func TestSnapshot_LowStock(t *testing.T) {
	s := seed(t,
		inventory.NewProduct{Name: "A", StockQuantity: 19},
		inventory.NewProduct{Name: "B", StockQuantity: 20},
		inventory.NewProduct{Name: "C", StockQuantity: 0},
		inventory.NewProduct{Name: "D", StockQuantity: 51},
	)

	var names []string
	for _, p := range s.Snapshot().LowStock() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"A", "C"}, names)
}

func TestSnapshot_TopSellers(t *testing.T) {
	ctx := context.Background()

	var specs []inventory.NewProduct
	for i := range 7 {
		specs = append(specs, inventory.NewProduct{Name: fmt.Sprintf("P%d", i), StockQuantity: i})
	}

	s := seed(t, specs...)

	// P0 is never sold.
	for _, p := range s.Products()[1:] {
		require.NoError(t, s.MarkAsSold(ctx, p.ID))
	}

	var names []string
	for _, p := range s.Snapshot().TopSellers() {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{"P6", "P5", "P4", "P3", "P2"}, names)
}

func TestSnapshot_TopSellersKeepsOrderOnTies(t *testing.T) {
	s := seed(t,
		inventory.NewProduct{Name: "first"},
		inventory.NewProduct{Name: "second"},
		inventory.NewProduct{Name: "third"},
	)

	top := s.Snapshot().TopSellers()
	require.Len(t, top, 3)
	assert.Equal(t, "first", top[0].Name)
	assert.Equal(t, "second", top[1].Name)
	assert.Equal(t, "third", top[2].Name)
}

func TestSnapshot_Search(t *testing.T) {
	s := seed(t,
		inventory.NewProduct{Name: "Chinelo Azul Marinho 35/36", SKU: "CHI-AZU-3536"},
		inventory.NewProduct{Name: "Tênis Branco 39/40", SKU: "TÊN-BRA-3940"},
		inventory.NewProduct{Name: "Sandália Rosa 37/38", SKU: "SAN-ROS-3738"},
	)

	tests := []struct {
		name string
		term string
		want []string
	}{
		{name: "EmptyMatchesAll", term: "", want: []string{"CHI-AZU-3536", "TÊN-BRA-3940", "SAN-ROS-3738"}},
		{name: "NameIgnoresCase", term: "chinelo", want: []string{"CHI-AZU-3536"}},
		{name: "SKU", term: "ros-37", want: []string{"SAN-ROS-3738"}},
		{name: "Accented", term: "TÊNIS", want: []string{"TÊN-BRA-3940"}},
		{name: "Size", term: "3", want: []string{"CHI-AZU-3536", "TÊN-BRA-3940", "SAN-ROS-3738"}},
		{name: "NoMatch", term: "bota", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var skus []string
			for _, p := range s.Snapshot().Search(tt.term) {
				skus = append(skus, p.SKU)
			}

			assert.Equal(t, tt.want, skus)
		})
	}
}

func TestSnapshot_Financial(t *testing.T) {
	ctx := context.Background()

	t.Run("NoRevenueMeansZeroMargin", func(t *testing.T) {
		s := seed(t, chinelo())

		sum := s.Snapshot().Financial()
		assert.True(t, sum.Revenue.IsZero())
		assert.True(t, sum.Expenses.Equal(decimal.NewFromInt(80)))
		assert.True(t, sum.Net.Equal(decimal.NewFromInt(-80)))
		assert.True(t, sum.Margin.IsZero())
	})

	t.Run("AfterSale", func(t *testing.T) {
		s := seed(t, chinelo())
		require.NoError(t, s.MarkAsSold(ctx, s.Products()[0].ID))

		sum := s.Snapshot().Financial()
		assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(12)))
		assert.True(t, sum.Net.Equal(decimal.NewFromInt(-68)))
	})
}

func TestProduct_Level(t *testing.T) {
	tests := []struct {
		stock int
		want  inventory.StockLevel
	}{
		{stock: 0, want: inventory.StockLow},
		{stock: 20, want: inventory.StockLow},
		{stock: 21, want: inventory.StockMedium},
		{stock: 50, want: inventory.StockMedium},
		{stock: 51, want: inventory.StockHigh},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.stock), func(t *testing.T) {
			p := inventory.Product{StockQuantity: tt.stock}
			assert.Equal(t, tt.want, p.Level())
			assert.Equal(t, tt.want.String(), p.Level().String())
		})
	}
}
