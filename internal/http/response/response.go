// Package response holds the JSON shapes shared by the API handlers.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int             `json:"stockQuantity"`
	SoldQuantity  int             `json:"soldQuantity"`
	IsSold        bool            `json:"isSold"`
	StockLevel    string          `json:"stockLevel"`
}

type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Type        ledger.Type     `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type Summary struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
	Margin   decimal.Decimal `json:"margin"`
}

// Snapshot is a full state version as pushed to live clients.
type Snapshot struct {
	Version      uint64        `json:"version"`
	DarkMode     bool          `json:"darkMode"`
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
}

func FromProduct(p inventory.Product) Product {
	return Product{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		SalePrice:     p.SalePrice,
		CostPrice:     p.CostPrice,
		StockQuantity: p.StockQuantity,
		SoldQuantity:  p.SoldQuantity,
		IsSold:        p.IsSold,
		StockLevel:    p.Level().String(),
	}
}

func FromProducts(products []inventory.Product) []Product {
	resp := make([]Product, len(products))
	for i, p := range products {
		resp[i] = FromProduct(p)
	}

	return resp
}

func FromTransaction(tx ledger.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Date:        tx.Date,
		Type:        tx.Type,
		Amount:      tx.Amount,
		Description: tx.Description,
	}
}

func FromTransactions(txs []ledger.Transaction) []Transaction {
	resp := make([]Transaction, len(txs))
	for i, tx := range txs {
		resp[i] = FromTransaction(tx)
	}

	return resp
}

func FromSummary(s ledger.Summary) Summary {
	return Summary{
		Revenue:  s.Revenue,
		Expenses: s.Expenses,
		Net:      s.Net,
		Margin:   s.Margin.Round(2),
	}
}

func FromSnapshot(s inventory.Snapshot) Snapshot {
	return Snapshot{
		Version:      s.Version,
		DarkMode:     s.DarkMode,
		Products:     FromProducts(s.Products()),
		Transactions: FromTransactions(s.Transactions()),
	}
}

// JSON writes v with the given status. Encoding failures are only logged since the header is
// already out.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
