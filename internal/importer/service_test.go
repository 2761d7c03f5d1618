package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/sapataria/internal/importer"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

const sheet = `nome;sku;preco_venda;preco_custo;quantidade
Chinelo;CHI-AZU-3536;20;8;10
Bota;BOT-PRE-4142;200;90;2
`

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := importer.NewMockProductAdder(ctrl)

	gomock.InOrder(
		store.EXPECT().
			AddProduct(gomock.Any(), gomock.Cond(func(np inventory.NewProduct) bool { return np.Name == "Chinelo" })).
			Return(inventory.Product{ID: uuid.New(), Name: "Chinelo"}, nil),
		store.EXPECT().
			AddProduct(gomock.Any(), gomock.Cond(func(np inventory.NewProduct) bool { return np.Name == "Bota" })).
			Return(inventory.Product{ID: uuid.New(), Name: "Bota"}, nil),
	)

	svc := importer.NewService(store)

	added, err := svc.Import(context.Background(), importer.FormatCatalog, strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "Chinelo", added[0].Name)
	assert.Equal(t, "Bota", added[1].Name)
}

func TestService_ImportStopsAtFirstFailedWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := importer.NewMockProductAdder(ctrl)

	gomock.InOrder(
		store.EXPECT().AddProduct(gomock.Any(), gomock.Any()).Return(inventory.Product{Name: "Chinelo"}, nil),
		store.EXPECT().AddProduct(gomock.Any(), gomock.Any()).Return(inventory.Product{}, errors.New("disk full")),
	)

	svc := importer.NewService(store)

	added, err := svc.Import(context.Background(), importer.FormatCatalog, strings.NewReader(sheet))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adding product 2 of 2 (Bota)")
	assert.Len(t, added, 1)
}

func TestService_ImportParseErrorAddsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := importer.NewMockProductAdder(ctrl)
	svc := importer.NewService(store)

	bad := sheet + "Sandália;x;y;z;1\n"

	added, err := svc.Import(context.Background(), importer.FormatCatalog, strings.NewReader(bad))
	require.Error(t, err)
	assert.Empty(t, added)
}

func TestService_UnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := importer.NewService(importer.NewMockProductAdder(ctrl))

	_, err := svc.Parse(importer.Format("xlsx"), strings.NewReader(sheet))
	assert.EqualError(t, err, "unknown format: xlsx")
}

func TestService_ImportIntoStore(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := inventory.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, inventory.ErrKeyNotFound).Times(3)
	repo.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	store, err := inventory.NewStore(ctx, repo)
	require.NoError(t, err)

	_, err = importer.NewService(store).Import(ctx, importer.FormatCatalog, strings.NewReader(sheet))
	require.NoError(t, err)

	assert.Len(t, store.Products(), 2)

	txs := store.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, "Custo inicial: Chinelo", txs[0].Description)
	assert.Equal(t, "80", txs[0].Amount.String())
	assert.Equal(t, "180", txs[1].Amount.String())
}
