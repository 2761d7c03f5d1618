package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is one sellable variant (a given model in one size and color).
// An active product has IsSold false and SoldQuantity 0. A sold product has IsSold true and
// SoldQuantity equal to the stock held when it was sold.
type Product struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	SalePrice     decimal.Decimal `json:"salePrice"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int             `json:"stockQuantity"`
	SoldQuantity  int             `json:"soldQuantity"`
	IsSold        bool            `json:"isSold"`
}

// NewProduct is the input of Store.AddProduct. The store does not validate it.
type NewProduct struct {
	Name          string          `json:"name" validate:"required"`
	SKU           string          `json:"sku"`
	SalePrice     decimal.Decimal `json:"salePrice" validate:"gte=0"`
	CostPrice     decimal.Decimal `json:"costPrice" validate:"gte=0"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
}

// ProductPatch overrides the non-nil fields of a product. The id cannot be patched.
type ProductPatch struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	SKU           *string          `json:"sku,omitempty"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty" validate:"omitempty,gte=0"`
	CostPrice     *decimal.Decimal `json:"costPrice,omitempty" validate:"omitempty,gte=0"`
	StockQuantity *int             `json:"stockQuantity,omitempty" validate:"omitempty,gte=0"`
	SoldQuantity  *int             `json:"soldQuantity,omitempty" validate:"omitempty,gte=0"`
	IsSold        *bool            `json:"isSold,omitempty"`
}

func (pp ProductPatch) apply(p Product) Product {
	if pp.Name != nil {
		p.Name = *pp.Name
	}

	if pp.SKU != nil {
		p.SKU = *pp.SKU
	}

	if pp.SalePrice != nil {
		p.SalePrice = *pp.SalePrice
	}

	if pp.CostPrice != nil {
		p.CostPrice = *pp.CostPrice
	}

	if pp.StockQuantity != nil {
		p.StockQuantity = *pp.StockQuantity
	}

	if pp.SoldQuantity != nil {
		p.SoldQuantity = *pp.SoldQuantity
	}

	if pp.IsSold != nil {
		p.IsSold = *pp.IsSold
	}

	return p
}

// StockLevel buckets a stock quantity for display.
type StockLevel int

const (
	StockLow StockLevel = iota
	StockMedium
	StockHigh
)

func (l StockLevel) String() string {
	switch l {
	case StockHigh:
		return "high"
	case StockMedium:
		return "medium"
	}

	return "low"
}

// Level reports the stock badge of the product: high above 50 units, medium above 20.
func (p Product) Level() StockLevel {
	switch {
	case p.StockQuantity > 50:
		return StockHigh
	case p.StockQuantity > 20:
		return StockMedium
	}

	return StockLow
}
