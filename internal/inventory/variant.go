package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

// Sizes offered by the add form, smallest first.
var Sizes = []string{"33/34", "35/36", "37/38", "39/40", "41/42", "43/44", "45/46"}

// Colors offered by the add form.
var Colors = []string{"Branco", "Preto", "Azul Marinho", "Laranja", "Bege", "Roxo", "Rosa", "Marsala"}

// VariantRequest is one submission of the add form: a model name with prices and a quantity
// that applies to every selected size and color.
type VariantRequest struct {
	Name      string          `json:"name" validate:"required"`
	SalePrice decimal.Decimal `json:"salePrice" validate:"gte=0"`
	CostPrice decimal.Decimal `json:"costPrice" validate:"gte=0"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	Sizes     []string        `json:"sizes" validate:"required,min=1,dive,required"`
	Colors    []string        `json:"colors" validate:"required,min=1,dive,required"`
}

func (r VariantRequest) Validate() error {
	return validation.Struct(r)
}

// Expand yields one NewProduct per color and size, colors in the outer loop.
func (r VariantRequest) Expand() []NewProduct {
	out := make([]NewProduct, 0, len(r.Colors)*len(r.Sizes))

	for _, color := range r.Colors {
		for _, size := range r.Sizes {
			out = append(out, NewProduct{
				Name:          fmt.Sprintf("%s %s %s", r.Name, color, size),
				SKU:           VariantSKU(r.Name, color, size),
				SalePrice:     r.SalePrice,
				CostPrice:     r.CostPrice,
				StockQuantity: r.Quantity,
			})
		}
	}

	return out
}

// VariantSKU derives a stock code such as "CHI-AZU-3536" from the first three letters of the
// model and color and the size without its slash. Codes are not guaranteed to be unique.
func VariantSKU(name, color, size string) string {
	return fmt.Sprintf("%s-%s-%s", skuPart(name), skuPart(color), strings.Replace(size, "/", "", 1))
}

func skuPart(s string) string {
	runes := []rune(s)
	if len(runes) > 3 {
		runes = runes[:3]
	}

	return cases.Upper(language.BrazilianPortuguese).String(string(runes))
}
