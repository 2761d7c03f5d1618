package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

func TestVariantForm_Request(t *testing.T) {
	f := &variantForm{
		Name:      " Chinelo ",
		SalePrice: "19,90",
		CostPrice: "R$ 7.50",
		Quantity:  "12",
		Sizes:     []string{"35/36"},
		Colors:    []string{"Azul Marinho"},
	}

	req, err := f.request()
	require.NoError(t, err)

	assert.Equal(t, "Chinelo", req.Name)
	assert.True(t, req.SalePrice.Equal(decimal.RequireFromString("19.90")))
	assert.True(t, req.CostPrice.Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, 12, req.Quantity)

	specs := req.Expand()
	require.Len(t, specs, 1)
	assert.Equal(t, "CHI-AZU-3536", specs[0].SKU)
}

func TestVariantForm_RequestErrors(t *testing.T) {
	valid := func() *variantForm {
		return &variantForm{
			Name: "Chinelo", SalePrice: "10", CostPrice: "4", Quantity: "1",
			Sizes: []string{"35/36"}, Colors: []string{"Preto"},
		}
	}

	tests := []struct {
		name   string
		mutate func(f *variantForm)
	}{
		{name: "SalePrice", mutate: func(f *variantForm) { f.SalePrice = "dez" }},
		{name: "CostPrice", mutate: func(f *variantForm) { f.CostPrice = "" }},
		{name: "NegativeQuantity", mutate: func(f *variantForm) { f.Quantity = "-1" }},
		{name: "NoSizes", mutate: func(f *variantForm) { f.Sizes = nil }},
		{name: "NoColors", mutate: func(f *variantForm) { f.Colors = nil }},
		{name: "NegativeCost", mutate: func(f *variantForm) { f.CostPrice = "-3" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid()
			tt.mutate(f)

			_, err := f.request()
			assert.Error(t, err)
		})
	}
}

func TestProductForm_Patch(t *testing.T) {
	p := inventory.Product{
		Name:          "Bota",
		SKU:           "BOT-PRE-4142",
		SalePrice:     decimal.NewFromInt(200),
		CostPrice:     decimal.RequireFromString("89.9"),
		StockQuantity: 4,
	}

	f := newProductForm(p)
	assert.Equal(t, "89.90", f.CostPrice)
	assert.Equal(t, "4", f.Stock)

	f.Stock = "6"
	f.SalePrice = "210,00"

	patch, err := f.patch()
	require.NoError(t, err)

	assert.Equal(t, "Bota", *patch.Name)
	assert.Equal(t, 6, *patch.StockQuantity)
	assert.True(t, patch.SalePrice.Equal(decimal.NewFromInt(210)))
	assert.Nil(t, patch.IsSold)
	assert.Nil(t, patch.SoldQuantity)
}

func TestProductForm_PatchRejectsNegativePrice(t *testing.T) {
	f := newProductForm(inventory.Product{Name: "Bota"})
	f.SalePrice = "-1"

	_, err := f.patch()

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "salePrice", verr.Fields[0].Field)
}

func TestExpenseForm_Parse(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)

	f := newExpenseForm(now)
	assert.Equal(t, "10/03/2024", f.Date)

	f.Description = "Aluguel"
	f.Amount = "1.500,00"

	e, err := f.parse()
	require.NoError(t, err)
	assert.Equal(t, "Aluguel", e.Description)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local), e.Date)

	f.Date = "2024-03-10"
	_, err = f.parse()
	assert.Error(t, err)

	f.Date = "10/03/2024"
	f.Description = " "
	_, err = f.parse()
	assert.Error(t, err)
}
