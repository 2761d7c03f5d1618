package view

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/money"
	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

// Form bindings live behind pointers: huh writes into them while the tea models are copied.

type variantForm struct {
	Name      string
	SalePrice string
	CostPrice string
	Quantity  string
	Sizes     []string
	Colors    []string
}

func (f *variantForm) request() (inventory.VariantRequest, error) {
	sale, err := money.Parse(f.SalePrice)
	if err != nil {
		return inventory.VariantRequest{}, fmt.Errorf("preço de venda: %w", err)
	}

	cost, err := money.Parse(f.CostPrice)
	if err != nil {
		return inventory.VariantRequest{}, fmt.Errorf("preço de custo: %w", err)
	}

	qty, err := parseQuantity(f.Quantity)
	if err != nil {
		return inventory.VariantRequest{}, err
	}

	req := inventory.VariantRequest{
		Name:      strings.TrimSpace(f.Name),
		SalePrice: sale,
		CostPrice: cost,
		Quantity:  qty,
		Sizes:     f.Sizes,
		Colors:    f.Colors,
	}

	if err := req.Validate(); err != nil {
		return inventory.VariantRequest{}, err
	}

	return req, nil
}

type productForm struct {
	Name      string
	SKU       string
	SalePrice string
	CostPrice string
	Stock     string
}

func newProductForm(p inventory.Product) *productForm {
	return &productForm{
		Name:      p.Name,
		SKU:       p.SKU,
		SalePrice: p.SalePrice.StringFixed(2),
		CostPrice: p.CostPrice.StringFixed(2),
		Stock:     strconv.Itoa(p.StockQuantity),
	}
}

// patch overrides every editable field; sold state is left alone.
func (f *productForm) patch() (inventory.ProductPatch, error) {
	sale, err := money.Parse(f.SalePrice)
	if err != nil {
		return inventory.ProductPatch{}, fmt.Errorf("preço de venda: %w", err)
	}

	cost, err := money.Parse(f.CostPrice)
	if err != nil {
		return inventory.ProductPatch{}, fmt.Errorf("preço de custo: %w", err)
	}

	stock, err := parseQuantity(f.Stock)
	if err != nil {
		return inventory.ProductPatch{}, err
	}

	patch := inventory.ProductPatch{
		Name:          new(strings.TrimSpace(f.Name)),
		SKU:           new(strings.TrimSpace(f.SKU)),
		SalePrice:     &sale,
		CostPrice:     &cost,
		StockQuantity: &stock,
	}

	if err := validation.Struct(patch); err != nil {
		return inventory.ProductPatch{}, err
	}

	return patch, nil
}

// expenseForm collects a manual expense. The store has no operation that records one, so the
// financial screen only acknowledges it.
type expenseForm struct {
	Description string
	Amount      string
	Date        string
}

func newExpenseForm(now time.Time) *expenseForm {
	return &expenseForm{Date: now.Format("02/01/2006")}
}

type expense struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
}

func (f *expenseForm) parse() (expense, error) {
	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		return expense{}, errors.New("descrição obrigatória")
	}

	amount, err := money.Parse(f.Amount)
	if err != nil {
		return expense{}, fmt.Errorf("valor: %w", err)
	}

	if amount.IsNegative() {
		return expense{}, errors.New("valor não pode ser negativo")
	}

	date, err := time.ParseInLocation("02/01/2006", strings.TrimSpace(f.Date), time.Local)
	if err != nil {
		return expense{}, errors.New("data inválida (DD/MM/AAAA)")
	}

	return expense{Description: desc, Amount: amount, Date: date}, nil
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("quantidade inválida %q", s)
	}

	return n, nil
}

func validAmount(s string) error {
	d, err := money.Parse(s)
	if err != nil {
		return errors.New("valor inválido")
	}

	if d.IsNegative() {
		return errors.New("valor não pode ser negativo")
	}

	return nil
}

func validQuantity(s string) error {
	_, err := parseQuantity(s)
	return err
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("campo obrigatório")
	}

	return nil
}

func atLeastOne(what string) func([]string) error {
	return func(v []string) error {
		if len(v) == 0 {
			return fmt.Errorf("selecione ao menos um %s", what)
		}

		return nil
	}
}
