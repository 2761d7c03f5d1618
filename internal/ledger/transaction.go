// Package ledger holds the append-only record of financial events derived from the catalog.
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type distinguishes money going out from money coming in.
type Type string

const (
	TypeExpense Type = "expense"
	TypeProfit  Type = "profit"
)

// Transaction is a single ledger entry. It carries no reference to the product that caused it,
// only the generated description.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Date        time.Time       `json:"date"`
	Type        Type            `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// New builds an entry with a fresh id. The date is stored in UTC.
func New(typ Type, amount decimal.Decimal, description string, date time.Time) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Date:        date.UTC(),
		Type:        typ,
		Amount:      amount,
		Description: description,
	}
}
