// Package catalog reads product sheets exported from a spreadsheet into products ready to be
// added to the inventory.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/sapataria/internal/encoding"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/money"
	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

// ErrNoHeader is returned when no row names the columns of a known layout.
var ErrNoHeader = errors.New("no catalog header found: expected columns nome, preco_venda, preco_custo and quantidade")

// listSep separates the sizes and colors of a variants row.
const listSep = "|"

var fieldNames = map[field]string{
	fieldName:      "name",
	fieldSKU:       "sku",
	fieldSalePrice: "salePrice",
	fieldCostPrice: "costPrice",
	fieldQuantity:  "quantity",
	fieldSizes:     "sizes",
	fieldColors:    "colors",
}

// Parser reads ";", "," or tab separated sheets in any of the layouts it knows, detecting the
// layout from the header row and the charset from the content.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

type record struct {
	line  int
	cells []string
}

func (p *Parser) Parse(r io.Reader) ([]inventory.NewProduct, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffComma(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records []record

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, cells: cells})
	}

	prof, cols, headerIdx := detectProfile(records)
	if prof == nil {
		return nil, ErrNoHeader
	}

	slog.Debug("parsing catalog", "charset", charset, "layout", prof.layout, "header_line", records[headerIdx].line)

	return parseRecords(prof.layout, cols, records[headerIdx+1:])
}

// sniffComma picks the separator that occurs most on the first non-blank line.
func sniffComma(data []byte) rune {
	for line := range bytes.Lines(data) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		best, bestCount := ';', bytes.Count(line, []byte{';'})

		for _, c := range []rune{',', '\t'} {
			if n := bytes.Count(line, []byte(string(c))); n > bestCount {
				best, bestCount = c, n
			}
		}

		return best
	}

	return ';'
}

func detectProfile(records []record) (*profile, columns, int) {
	for i, rec := range records {
		cols := headerColumns(rec.cells)

		for j := range profiles {
			if profiles[j].matches(cols) {
				return &profiles[j], cols, i
			}
		}
	}

	return nil, nil, 0
}

func parseRecords(layout Layout, cols columns, records []record) ([]inventory.NewProduct, error) {
	var out []inventory.NewProduct

	for _, rec := range records {
		if blank(rec.cells) {
			continue
		}

		switch layout {
		case LayoutVariants:
			products, err := variantRow(cols, rec.cells)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", rec.line, err)
			}

			out = append(out, products...)
		case LayoutProducts:
			np, err := productRow(cols, rec.cells)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", rec.line, err)
			}

			out = append(out, np)
		}
	}

	return out, nil
}

func productRow(cols columns, row []string) (inventory.NewProduct, error) {
	sale, cost, qty, err := numbers(cols, row)
	if err != nil {
		return inventory.NewProduct{}, err
	}

	np := inventory.NewProduct{
		Name:          cellValue(row, cols, fieldName),
		SKU:           cellValue(row, cols, fieldSKU),
		SalePrice:     sale,
		CostPrice:     cost,
		StockQuantity: qty,
	}

	if err := validation.Struct(np); err != nil {
		return inventory.NewProduct{}, err
	}

	return np, nil
}

func variantRow(cols columns, row []string) ([]inventory.NewProduct, error) {
	sale, cost, qty, err := numbers(cols, row)
	if err != nil {
		return nil, err
	}

	req := inventory.VariantRequest{
		Name:      cellValue(row, cols, fieldName),
		SalePrice: sale,
		CostPrice: cost,
		Quantity:  qty,
		Sizes:     splitList(cellValue(row, cols, fieldSizes)),
		Colors:    splitList(cellValue(row, cols, fieldColors)),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req.Expand(), nil
}

func numbers(cols columns, row []string) (sale, cost decimal.Decimal, qty int, err error) {
	if sale, err = money.Parse(cellValue(row, cols, fieldSalePrice)); err != nil {
		return sale, cost, 0, fmt.Errorf("%s: %w", fieldNames[fieldSalePrice], err)
	}

	if cost, err = money.Parse(cellValue(row, cols, fieldCostPrice)); err != nil {
		return sale, cost, 0, fmt.Errorf("%s: %w", fieldNames[fieldCostPrice], err)
	}

	raw := cellValue(row, cols, fieldQuantity)

	if qty, err = strconv.Atoi(raw); err != nil {
		return sale, cost, 0, fmt.Errorf("%s: invalid quantity %q", fieldNames[fieldQuantity], raw)
	}

	return sale, cost, qty, nil
}

func splitList(s string) []string {
	var out []string

	for part := range strings.SplitSeq(s, listSep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// cellValue returns the trimmed cell of f, or "" when the column is absent or the row is short.
func cellValue(row []string, cols columns, f field) string {
	idx, ok := cols[f]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
