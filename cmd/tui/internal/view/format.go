package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sapataria/internal/money"
)

const storeTimeout = 5 * time.Second

func FormatAmount(d decimal.Decimal) string {
	return money.Format(d)
}

// FormatDate renders t as DD/MM/YYYY in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format("02/01/2006")
}

// StoreCtx returns a context with a standard timeout for store writes.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
