package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

// number is a decimal persisted as a bare JSON number. Quoted values are still accepted on load.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}

	*n = number(d)

	return nil
}

type storedProduct struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	SalePrice     number    `json:"salePrice"`
	CostPrice     number    `json:"costPrice"`
	StockQuantity int       `json:"stockQuantity"`
	SoldQuantity  int       `json:"soldQuantity"`
	IsSold        bool      `json:"isSold"`
}

type storedTransaction struct {
	ID          uuid.UUID   `json:"id"`
	Date        time.Time   `json:"date"`
	Type        ledger.Type `json:"type"`
	Amount      number      `json:"amount"`
	Description string      `json:"description"`
}

func encodeProducts(products []Product) []storedProduct {
	out := make([]storedProduct, len(products))
	for i, p := range products {
		out[i] = storedProduct{
			ID:            p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			SalePrice:     number(p.SalePrice),
			CostPrice:     number(p.CostPrice),
			StockQuantity: p.StockQuantity,
			SoldQuantity:  p.SoldQuantity,
			IsSold:        p.IsSold,
		}
	}

	return out
}

func decodeProducts(stored []storedProduct) []Product {
	out := make([]Product, len(stored))
	for i, sp := range stored {
		out[i] = Product{
			ID:            sp.ID,
			Name:          sp.Name,
			SKU:           sp.SKU,
			SalePrice:     decimal.Decimal(sp.SalePrice),
			CostPrice:     decimal.Decimal(sp.CostPrice),
			StockQuantity: sp.StockQuantity,
			SoldQuantity:  sp.SoldQuantity,
			IsSold:        sp.IsSold,
		}
	}

	return out
}

func encodeTransactions(txs []ledger.Transaction) []storedTransaction {
	out := make([]storedTransaction, len(txs))
	for i, tx := range txs {
		out[i] = storedTransaction{
			ID:          tx.ID,
			Date:        tx.Date,
			Type:        tx.Type,
			Amount:      number(tx.Amount),
			Description: tx.Description,
		}
	}

	return out
}

func decodeTransactions(stored []storedTransaction) []ledger.Transaction {
	out := make([]ledger.Transaction, len(stored))
	for i, st := range stored {
		out[i] = ledger.Transaction{
			ID:          st.ID,
			Date:        st.Date,
			Type:        st.Type,
			Amount:      decimal.Decimal(st.Amount),
			Description: st.Description,
		}
	}

	return out
}
