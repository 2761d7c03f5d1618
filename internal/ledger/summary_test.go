package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.UTC)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name         string
		txs          []ledger.Transaction
		wantRevenue  string
		wantExpenses string
		wantNet      string
		wantMargin   string
	}{
		{
			name:         "Empty",
			wantRevenue:  "0",
			wantExpenses: "0",
			wantNet:      "0",
			wantMargin:   "0",
		},
		{
			name: "OnlyExpensesKeepsMarginAtZero",
			txs: []ledger.Transaction{
				ledger.New(ledger.TypeExpense, dec("80"), "Custo inicial: Chinelo", at(2024, 1, 1)),
				ledger.New(ledger.TypeExpense, dec("20"), "Custo inicial: Sandália", at(2024, 1, 2)),
			},
			wantRevenue:  "0",
			wantExpenses: "100",
			wantNet:      "-100",
			wantMargin:   "0",
		},
		{
			name: "Mixed",
			txs: []ledger.Transaction{
				ledger.New(ledger.TypeExpense, dec("80"), "Custo inicial: Chinelo", at(2024, 1, 1)),
				ledger.New(ledger.TypeProfit, dec("12"), "Venda: Chinelo", at(2024, 1, 3)),
				ledger.New(ledger.TypeProfit, dec("38"), "Venda: Tênis", at(2024, 1, 4)),
			},
			wantRevenue:  "50",
			wantExpenses: "80",
			wantNet:      "-30",
			wantMargin:   "-60",
		},
		{
			name: "NegativeRevenueKeepsMarginAtZero",
			txs: []ledger.Transaction{
				ledger.New(ledger.TypeProfit, dec("-2"), "Venda: Bota", at(2024, 1, 1)),
			},
			wantRevenue:  "-2",
			wantExpenses: "0",
			wantNet:      "-2",
			wantMargin:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Summarize(tt.txs)

			assert.True(t, got.Revenue.Equal(dec(tt.wantRevenue)), "revenue %s", got.Revenue)
			assert.True(t, got.Expenses.Equal(dec(tt.wantExpenses)), "expenses %s", got.Expenses)
			assert.True(t, got.Net.Equal(dec(tt.wantNet)), "net %s", got.Net)
			assert.True(t, got.Margin.Equal(dec(tt.wantMargin)), "margin %s", got.Margin)
		})
	}
}

func TestBetween(t *testing.T) {
	txs := []ledger.Transaction{
		ledger.New(ledger.TypeExpense, dec("1"), "a", at(2024, 1, 1)),
		ledger.New(ledger.TypeExpense, dec("2"), "b", at(2024, 2, 1)),
		ledger.New(ledger.TypeProfit, dec("3"), "c", at(2024, 3, 1)),
	}

	got := ledger.Between(txs, at(2024, 1, 15), at(2024, 3, 1))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Description)
	assert.Equal(t, "c", got[1].Description)

	assert.Len(t, ledger.Between(txs, time.Time{}, time.Time{}), 3)
	assert.Len(t, ledger.Between(txs, time.Time{}, at(2024, 1, 1)), 1)
}

func TestTake(t *testing.T) {
	var txs []ledger.Transaction
	for i := range 7 {
		txs = append(txs, ledger.New(ledger.TypeProfit, decimal.NewFromInt(int64(i)), "Venda", at(2024, 1, i+1)))
	}

	txs = append(txs, ledger.New(ledger.TypeExpense, dec("9"), "Custo", at(2024, 2, 1)))

	profits := ledger.Take(txs, ledger.TypeProfit, 5)
	require.Len(t, profits, 5)
	assert.True(t, profits[0].Amount.Equal(decimal.Zero))
	assert.True(t, profits[4].Amount.Equal(decimal.NewFromInt(4)))
	assert.True(t, profits[0].Date.Before(profits[4].Date), "oldest entries come first")

	assert.Len(t, ledger.Take(txs, ledger.TypeExpense, 5), 1)
	assert.Empty(t, ledger.Take(txs, ledger.TypeExpense, 0))
}

func TestNew_StoresUTC(t *testing.T) {
	local := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

	tx := ledger.New(ledger.TypeExpense, dec("10"), "Custo inicial: Bota", local)

	assert.Equal(t, time.UTC, tx.Date.Location())
	assert.True(t, tx.Date.Equal(local))
	assert.NotEmpty(t, tx.ID)
}
