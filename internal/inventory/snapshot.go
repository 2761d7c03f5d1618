package inventory

import (
	"cmp"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

const (
	// LowStockThreshold is the quantity below which a product is flagged for restocking.
	LowStockThreshold = 20
	// TopSellersLimit is the size of the best sellers ranking.
	TopSellersLimit = 5
)

// Snapshot is an immutable view of the store at a given version.
type Snapshot struct {
	Version  uint64
	DarkMode bool

	products     []Product
	transactions []ledger.Transaction
}

// Products returns a copy of the catalog in insertion order.
func (s Snapshot) Products() []Product {
	return slices.Clone(s.products)
}

// Transactions returns a copy of the ledger in insertion order.
func (s Snapshot) Transactions() []ledger.Transaction {
	return slices.Clone(s.transactions)
}

// StockTotals aggregates the catalog for the dashboard.
type StockTotals struct {
	Stock   int
	Sold    int
	Revenue decimal.Decimal // sum of sale price x sold quantity
	Cost    decimal.Decimal // sum of cost price x (sold + stock quantity)
}

func (s Snapshot) StockTotals() StockTotals {
	t := StockTotals{Revenue: decimal.Zero, Cost: decimal.Zero}

	for _, p := range s.products {
		t.Stock += p.StockQuantity
		t.Sold += p.SoldQuantity
		t.Revenue = t.Revenue.Add(p.SalePrice.Mul(decimal.NewFromInt(int64(p.SoldQuantity))))
		t.Cost = t.Cost.Add(p.CostPrice.Mul(decimal.NewFromInt(int64(p.SoldQuantity + p.StockQuantity))))
	}

	return t
}

// LowStock lists the products holding fewer than LowStockThreshold units.
func (s Snapshot) LowStock() []Product {
	var out []Product

	for _, p := range s.products {
		if p.StockQuantity < LowStockThreshold {
			out = append(out, p)
		}
	}

	return out
}

// TopSellers ranks products by sold quantity, keeping catalog order between ties.
func (s Snapshot) TopSellers() []Product {
	ranked := slices.Clone(s.products)
	slices.SortStableFunc(ranked, func(a, b Product) int {
		return cmp.Compare(b.SoldQuantity, a.SoldQuantity)
	})

	if len(ranked) > TopSellersLimit {
		ranked = ranked[:TopSellersLimit]
	}

	return ranked
}

// Search returns the products whose name or SKU contains term, ignoring case.
// An empty term matches everything.
func (s Snapshot) Search(term string) []Product {
	fold := cases.Fold()
	needle := fold.String(term)

	out := make([]Product, 0, len(s.products))

	for _, p := range s.products {
		if strings.Contains(fold.String(p.Name), needle) || strings.Contains(fold.String(p.SKU), needle) {
			out = append(out, p)
		}
	}

	return out
}

// Financial summarizes the whole ledger.
func (s Snapshot) Financial() ledger.Summary {
	return ledger.Summarize(s.transactions)
}
