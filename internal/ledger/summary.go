package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summary aggregates a set of entries for the financial overview.
type Summary struct {
	Revenue  decimal.Decimal
	Expenses decimal.Decimal
	Net      decimal.Decimal
	// Margin is Net/Revenue as a percentage, zero when there is no revenue.
	Margin decimal.Decimal
}

func Summarize(txs []Transaction) Summary {
	s := Summary{
		Revenue:  decimal.Zero,
		Expenses: decimal.Zero,
		Margin:   decimal.Zero,
	}

	for _, tx := range txs {
		switch tx.Type {
		case TypeProfit:
			s.Revenue = s.Revenue.Add(tx.Amount)
		case TypeExpense:
			s.Expenses = s.Expenses.Add(tx.Amount)
		}
	}

	s.Net = s.Revenue.Sub(s.Expenses)

	if s.Revenue.IsPositive() {
		s.Margin = s.Net.Div(s.Revenue).Mul(hundred)
	}

	return s
}

// Between keeps the entries dated within [start, end]. A zero bound is open.
func Between(txs []Transaction, start, end time.Time) []Transaction {
	out := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		if !start.IsZero() && tx.Date.Before(start) {
			continue
		}

		if !end.IsZero() && tx.Date.After(end) {
			continue
		}

		out = append(out, tx)
	}

	return out
}

// Take returns up to n entries of the given type in ledger order.
func Take(txs []Transaction, typ Type, n int) []Transaction {
	if n <= 0 {
		return nil
	}

	out := make([]Transaction, 0, n)

	for _, tx := range txs {
		if len(out) == n {
			break
		}

		if tx.Type == typ {
			out = append(out, tx)
		}
	}

	return out
}
