package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

type staticSource []ledger.Transaction

func (s staticSource) Transactions() []ledger.Transaction {
	return s
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 15, 0, 0, 0, time.UTC)
}

func fixture() staticSource {
	return staticSource{
		ledger.New(ledger.TypeExpense, decimal.NewFromInt(80), "Custo inicial: Chinelo", day(1)),
		ledger.New(ledger.TypeProfit, decimal.NewFromInt(12), "Venda: Chinelo", day(5)),
		ledger.New(ledger.TypeExpense, decimal.RequireFromString("37.5"), "Custo inicial: Bota; couro", day(9)),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, fixture()))

	want := "data;tipo;valor;descricao\n" +
		"2024-03-01;despesa;80,00;Custo inicial: Chinelo\n" +
		"2024-03-05;lucro;12,00;Venda: Chinelo\n" +
		"2024-03-09;despesa;37,50;\"Custo inicial: Bota; couro\"\n"

	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "data;tipo;valor;descricao\n", buf.String())
}

func TestService_Export(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	svc := NewService(fixture())
	svc.now = func() time.Time { return day(18) }

	t.Run("Range", func(t *testing.T) {
		path, txs, err := svc.Export(context.Background(), Filter{Start: day(2), End: day(9)}, dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "lancamentos_20240302-20240309.csv"), path)
		require.Len(t, txs, 2)
		assert.Equal(t, "Venda: Chinelo", txs[0].Description)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "2024-03-05;lucro;12,00;Venda: Chinelo")
		assert.NotContains(t, string(raw), "2024-03-01")
	})

	t.Run("OpenRange", func(t *testing.T) {
		path, txs, err := svc.Export(context.Background(), Filter{}, dir)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, "lancamentos_20240318.csv"), path)
		assert.Len(t, txs, 3)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := svc.Export(ctx, Filter{}, dir)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_GenerateSummary(t *testing.T) {
	svc := NewService(nil)

	got := svc.GenerateSummary(fixture())

	want := "* 2024-03-01 | Custo inicial: Chinelo | - R$ 80.00\n" +
		"* 2024-03-05 | Venda: Chinelo | + R$ 12.00\n" +
		"* 2024-03-09 | Custo inicial: Bota; couro | - R$ 37.50\n" +
		"\n" +
		"Receita: R$ 12.00\n" +
		"Despesas: R$ 117.50\n" +
		"Lucro líquido: - R$ 105.50\n" +
		"Margem: -879.2%\n"

	assert.Equal(t, want, got)
}

func TestService_GenerateSummaryEmpty(t *testing.T) {
	got := NewService(nil).GenerateSummary(nil)

	assert.Equal(t, "Receita: R$ 0.00\nDespesas: R$ 0.00\nLucro líquido: + R$ 0.00\nMargem: 0.0%\n", got)
}

func TestService_WritePDF(t *testing.T) {
	svc := NewService(fixture())
	svc.now = func() time.Time { return day(18) }

	var buf bytes.Buffer

	require.NoError(t, svc.WritePDF(&buf, Title(Filter{Start: day(1), End: day(31)}), svc.List(Filter{})))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{name: "Open", want: "Relatório financeiro"},
		{name: "Range", filter: Filter{Start: day(1), End: day(31)}, want: "Relatório financeiro 01/03/2024 a 31/03/2024"},
		{name: "Since", filter: Filter{Start: day(4)}, want: "Relatório financeiro desde 04/03/2024"},
		{name: "Until", filter: Filter{End: day(4)}, want: "Relatório financeiro até 04/03/2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.filter))
		})
	}
}
