package importer

import (
	"context"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/sapataria/internal/importer/catalog"
	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
)

type Service struct {
	store           ProductAdder
	catalogImporter Importer
}

func NewService(store ProductAdder) *Service {
	return &Service{
		store:           store,
		catalogImporter: catalog.NewParser(),
	}
}

// Parse reads r without touching the store, for previews.
func (s *Service) Parse(format Format, r io.Reader) ([]inventory.NewProduct, error) {
	var importer Importer

	switch format {
	case FormatCatalog:
		importer = s.catalogImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// Import parses r and adds every product in file order, each with its own initial cost expense.
// Nothing is added when parsing fails. A failed write stops the import; the products added
// before it stay and are returned.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) ([]inventory.Product, error) {
	specs, err := s.Parse(format, r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", format, err)
	}

	return s.Add(ctx, specs)
}

// Add writes already parsed products to the store.
func (s *Service) Add(ctx context.Context, specs []inventory.NewProduct) ([]inventory.Product, error) {
	added := make([]inventory.Product, 0, len(specs))

	for i, np := range specs {
		p, err := s.store.AddProduct(ctx, np)
		if err != nil {
			return added, fmt.Errorf("adding product %d of %d (%s): %w", i+1, len(specs), np.Name, err)
		}

		added = append(added, p)
	}

	return added, nil
}
