package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
	"github.com/MrJamesThe3rd/sapataria/internal/money"
)

// WritePDF renders the entries as a printable report: a table of entries followed by the
// revenue, expenses, net profit and margin of the period.
func (s *Service) WritePDF(w io.Writer, title string, txs []ledger.Transaction) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AliasNbPages("")

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := s.now().Format("02/01/2006 15:04")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Gerado em %s - página %d/{nb}", generated, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	widths := []float64{25, 22, 100, 33}
	header := []string{"Data", "Tipo", "Descrição", "Valor"}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)

	for i, h := range header {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}

	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)

	for _, tx := range txs {
		amount := tx.Amount
		if tx.Type == ledger.TypeExpense {
			amount = amount.Neg()
		}

		pdf.CellFormat(widths[0], 6, tx.Date.Format("02/01/2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, typeLabels[tx.Type], "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(truncate(tx.Description, 60)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(money.FormatSigned(amount)), "1", 1, "R", false, 0, "")
	}

	sum := ledger.Summarize(txs)

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)

	for _, line := range [][2]string{
		{"Receita", money.Format(sum.Revenue)},
		{"Despesas", money.Format(sum.Expenses)},
		{"Lucro líquido", money.FormatSigned(sum.Net)},
		{"Margem", sum.Margin.StringFixed(1) + "%"},
	} {
		pdf.CellFormat(50, 6, tr(line[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(line[1]), "", 1, "R", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}

// Title names a report after its range, e.g. "Relatório financeiro 01/03/2024 a 31/03/2024".
func Title(filter Filter) string {
	const base = "Relatório financeiro"

	switch {
	case !filter.Start.IsZero() && !filter.End.IsZero():
		return fmt.Sprintf("%s %s a %s", base, filter.Start.Format("02/01/2006"), filter.End.Format("02/01/2006"))
	case !filter.Start.IsZero():
		return fmt.Sprintf("%s desde %s", base, filter.Start.Format("02/01/2006"))
	case !filter.End.IsZero():
		return fmt.Sprintf("%s até %s", base, filter.End.Format("02/01/2006"))
	}

	return base
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
