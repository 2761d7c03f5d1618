package importer

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

type Format string

const (
	FormatCatalog Format = "catalog"
)

type Importer interface {
	Parse(r io.Reader) ([]inventory.NewProduct, error)
}

// ProductAdder is the part of the inventory store an import writes to.
//
//go:generate mockgen -source=importer.go -destination=importer_mock.go -package=importer
type ProductAdder interface {
	AddProduct(ctx context.Context, np inventory.NewProduct) (inventory.Product, error)
}
