package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
	"github.com/MrJamesThe3rd/sapataria/internal/money"
)

// Source provides the ledger to export. *inventory.Store satisfies it.
type Source interface {
	Transactions() []ledger.Transaction
}

// Filter narrows an export to a date range. Zero bounds are open.
type Filter struct {
	Start time.Time
	End   time.Time
}

// Service writes the ledger out as CSV files and plain text summaries.
type Service struct {
	source Source
	now    func() time.Time
}

func NewService(source Source) *Service {
	return &Service{
		source: source,
		now:    time.Now,
	}
}

var typeLabels = map[ledger.Type]string{
	ledger.TypeExpense: "despesa",
	ledger.TypeProfit:  "lucro",
}

// List returns the ledger entries matching filter in ledger order.
func (s *Service) List(filter Filter) []ledger.Transaction {
	return ledger.Between(s.source.Transactions(), filter.Start, filter.End)
}

// Export writes the entries matching filter to a CSV file in outputDir and returns its path
// together with the exported entries.
func (s *Service) Export(ctx context.Context, filter Filter, outputDir string) (string, []ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	txs := s.List(filter)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, s.filename(filter))

	f, err := os.Create(path)
	if err != nil {
		return "", nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, txs); err != nil {
		return "", nil, fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", nil, fmt.Errorf("closing %s: %w", path, err)
	}

	return path, txs, nil
}

// Format: lancamentos_YYYYMMDD-YYYYMMDD.csv, or the export date when the range is open.
func (s *Service) filename(filter Filter) string {
	if filter.Start.IsZero() || filter.End.IsZero() {
		return fmt.Sprintf("lancamentos_%s.csv", s.now().Format("20060102"))
	}

	return fmt.Sprintf("lancamentos_%s-%s.csv", filter.Start.Format("20060102"), filter.End.Format("20060102"))
}

// WriteCSV writes a ";" separated sheet with a data;tipo;valor;descricao header. Amounts use a
// decimal comma so spreadsheets in pt-BR read them as numbers.
func WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"data", "tipo", "valor", "descricao"}); err != nil {
		return err
	}

	for _, tx := range txs {
		err := cw.Write([]string{
			tx.Date.Format(time.DateOnly),
			typeLabels[tx.Type],
			strings.Replace(tx.Amount.StringFixed(2), ".", ",", 1),
			tx.Description,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// GenerateSummary renders the entries one per line followed by their totals.
func (s *Service) GenerateSummary(txs []ledger.Transaction) string {
	var sb strings.Builder

	for _, tx := range txs {
		amount := tx.Amount
		if tx.Type == ledger.TypeExpense {
			amount = amount.Neg()
		}

		fmt.Fprintf(&sb, "* %s | %s | %s\n", tx.Date.Format(time.DateOnly), tx.Description, money.FormatSigned(amount))
	}

	sum := ledger.Summarize(txs)

	if len(txs) > 0 {
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "Receita: %s\n", money.Format(sum.Revenue))
	fmt.Fprintf(&sb, "Despesas: %s\n", money.Format(sum.Expenses))
	fmt.Fprintf(&sb, "Lucro líquido: %s\n", money.FormatSigned(sum.Net))
	fmt.Fprintf(&sb, "Margem: %s%%\n", sum.Margin.StringFixed(1))

	return sb.String()
}
