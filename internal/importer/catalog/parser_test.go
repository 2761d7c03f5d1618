package catalog_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/sapataria/internal/importer/catalog"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/validation"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertProduct(t *testing.T, want, got inventory.NewProduct) {
	t.Helper()

	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.SKU, got.SKU)
	assert.True(t, want.SalePrice.Equal(got.SalePrice), "sale price: want %s, got %s", want.SalePrice, got.SalePrice)
	assert.True(t, want.CostPrice.Equal(got.CostPrice), "cost price: want %s, got %s", want.CostPrice, got.CostPrice)
	assert.Equal(t, want.StockQuantity, got.StockQuantity)
}

func TestParser_ProductsSemicolon(t *testing.T) {
	csv := `nome;sku;preço_venda;preço_custo;quantidade
Chinelo Azul Marinho 35/36;CHI-AZU-3536;20,00;8,00;10
Bota Preto 41/42;BOT-PRE-4142;1.299,90;650,5;2

Sandália Rosa 37/38;;59,90;R$ 22,35;0
`

	got, err := catalog.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assertProduct(t, inventory.NewProduct{
		Name: "Chinelo Azul Marinho 35/36", SKU: "CHI-AZU-3536", SalePrice: dec("20"), CostPrice: dec("8"), StockQuantity: 10,
	}, got[0])
	assertProduct(t, inventory.NewProduct{
		Name: "Bota Preto 41/42", SKU: "BOT-PRE-4142", SalePrice: dec("1299.90"), CostPrice: dec("650.5"), StockQuantity: 2,
	}, got[1])
	assertProduct(t, inventory.NewProduct{
		Name: "Sandália Rosa 37/38", SalePrice: dec("59.90"), CostPrice: dec("22.35"),
	}, got[2])
}

func TestParser_ProductsCommaEnglishHeader(t *testing.T) {
	csv := "Name,Sale Price,Cost Price,Stock\n" +
		"Tênis Branco 39/40,129.90,60,4\n" +
		"\"Slip-on, Bege\",\"89,90\",40,1\n"

	got, err := catalog.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 2)

	assertProduct(t, inventory.NewProduct{
		Name: "Tênis Branco 39/40", SalePrice: dec("129.90"), CostPrice: dec("60"), StockQuantity: 4,
	}, got[0])
	assertProduct(t, inventory.NewProduct{
		Name: "Slip-on, Bege", SalePrice: dec("89.90"), CostPrice: dec("40"), StockQuantity: 1,
	}, got[1])
}

func TestParser_HeaderAfterPreamble(t *testing.T) {
	csv := `Estoque da loja;outubro
Gerado em;2024-10-01

Produto;Código;Preço de Venda;Preço de Custo;Qtd
Chinelo;CHI;20;8;10
`

	got, err := catalog.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "CHI", got[0].SKU)
}

func TestParser_Variants(t *testing.T) {
	csv := `modelo;preco_venda;preco_custo;quantidade;tamanhos;cores
Chinelo;20;8;10;35/36 | 37/38;Azul Marinho|Preto
`

	got, err := catalog.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, got, 4)

	var skus []string
	for _, np := range got {
		skus = append(skus, np.SKU)
		assert.Equal(t, 10, np.StockQuantity)
		assert.True(t, np.CostPrice.Equal(dec("8")))
	}

	assert.Equal(t, []string{"CHI-AZU-3536", "CHI-AZU-3738", "CHI-PRE-3536", "CHI-PRE-3738"}, skus)
	assert.Equal(t, "Chinelo Azul Marinho 35/36", got[0].Name)
}

func TestParser_Latin1(t *testing.T) {
	utf8CSV := "nome;preço_venda;preço_custo;quantidade\nSandália Marsala 37/38;59,90;22,00;3\n"

	latin1, err := charmap.Windows1252.NewEncoder().String(utf8CSV)
	require.NoError(t, err)

	got, err := catalog.NewParser().Parse(strings.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Sandália Marsala 37/38", got[0].Name)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr string
	}{
		{
			name:    "NoHeader",
			csv:     "a;b;c\n1;2;3\n",
			wantErr: "no catalog header found",
		},
		{
			name:    "InvalidPrice",
			csv:     "nome;preco_venda;preco_custo;quantidade\nChinelo;vinte;8;10\n",
			wantErr: "line 2: salePrice",
		},
		{
			name:    "MissingCost",
			csv:     "nome;preco_venda;preco_custo;quantidade\nChinelo;20;8;10\nBota;20;;10\n",
			wantErr: "line 3: costPrice",
		},
		{
			name:    "InvalidQuantity",
			csv:     "nome;preco_venda;preco_custo;quantidade\nChinelo;20;8;dez\n",
			wantErr: `line 2: quantity: invalid quantity "dez"`,
		},
		{
			name:    "VariantWithoutColors",
			csv:     "nome;preco_venda;preco_custo;quantidade;tamanhos;cores\nChinelo;20;8;10;35/36;\n",
			wantErr: "line 2: validation failed: colors",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.NewParser().Parse(strings.NewReader(tt.csv))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_ValidationError(t *testing.T) {
	csv := "nome;preco_venda;preco_custo;quantidade\n;20;8;-1\n"

	_, err := catalog.NewParser().Parse(strings.NewReader(csv))
	require.Error(t, err)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)

	var fields []string
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}

	assert.ElementsMatch(t, []string{"name", "stockQuantity"}, fields)
}
