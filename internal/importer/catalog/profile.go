package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Layout names the kind of sheet that was recognized.
type Layout string

const (
	// LayoutProducts has one row per product.
	LayoutProducts Layout = "produtos"
	// LayoutVariants has one row per model with "|" separated sizes and colors,
	// expanded into one product per color and size.
	LayoutVariants Layout = "variantes"
)

type field int

const (
	fieldName field = iota
	fieldSKU
	fieldSalePrice
	fieldCostPrice
	fieldQuantity
	fieldSizes
	fieldColors
)

// aliases maps normalized header names to the field they hold.
var aliases = map[string]field{
	"nome":    fieldName,
	"produto": fieldName,
	"modelo":  fieldName,
	"name":    fieldName,
	"product": fieldName,

	"sku":    fieldSKU,
	"codigo": fieldSKU,
	"code":   fieldSKU,

	"preco_venda":    fieldSalePrice,
	"preco_de_venda": fieldSalePrice,
	"venda":          fieldSalePrice,
	"sale_price":     fieldSalePrice,
	"saleprice":      fieldSalePrice,
	"price":          fieldSalePrice,

	"preco_custo":    fieldCostPrice,
	"preco_de_custo": fieldCostPrice,
	"custo":          fieldCostPrice,
	"cost_price":     fieldCostPrice,
	"costprice":      fieldCostPrice,
	"cost":           fieldCostPrice,

	"quantidade":     fieldQuantity,
	"qtd":            fieldQuantity,
	"estoque":        fieldQuantity,
	"quantity":       fieldQuantity,
	"stock":          fieldQuantity,
	"stock_quantity": fieldQuantity,
	"stockquantity":  fieldQuantity,

	"tamanhos": fieldSizes,
	"tamanho":  fieldSizes,
	"sizes":    fieldSizes,

	"cores":  fieldColors,
	"cor":    fieldColors,
	"colors": fieldColors,
}

type profile struct {
	layout   Layout
	required []field
}

// profiles are tried in order; the more specific layout comes first.
var profiles = []profile{
	{
		layout:   LayoutVariants,
		required: []field{fieldName, fieldSalePrice, fieldCostPrice, fieldQuantity, fieldSizes, fieldColors},
	},
	{
		layout:   LayoutProducts,
		required: []field{fieldName, fieldSalePrice, fieldCostPrice, fieldQuantity},
	},
}

// columns maps each recognized field to its index in a row.
type columns map[field]int

func (p profile) matches(cols columns) bool {
	for _, f := range p.required {
		if _, ok := cols[f]; !ok {
			return false
		}
	}

	return true
}

// headerColumns recognizes the cells of a candidate header row. The first column wins when a
// field appears twice.
func headerColumns(row []string) columns {
	cols := make(columns)

	for i, cell := range row {
		f, ok := aliases[normalize(cell)]
		if !ok {
			continue
		}

		if _, seen := cols[f]; !seen {
			cols[f] = i
		}
	}

	return cols
}


// normalize folds case, drops accents and joins words with underscores,
// so "Preço de Venda" becomes "preco_de_venda".
func normalize(s string) string {
	plain, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), strings.TrimSpace(s))
	if err != nil {
		plain = s
	}

	plain = cases.Fold().String(plain)

	return strings.Join(strings.FieldsFunc(plain, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '_' || r == '.'
	}), "_")
}
