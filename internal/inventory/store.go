// Package inventory owns the product catalog and derives ledger entries from its lifecycle.
//
// A Store keeps products, transactions and the dark mode preference in memory and mirrors
// every change to a Repository before the change becomes visible. Consumers read immutable
// snapshots and may subscribe to receive each new snapshot in order.
package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/sapataria/internal/ledger"
)

// Keys under which each collection is persisted.
const (
	KeyProducts     = "products"
	KeyTransactions = "transactions"
	KeyDarkMode     = "darkMode"
)

// Record is one key and its serialized value.
type Record struct {
	Key   string
	Value []byte
}

// Repository is the durable key-value storage behind a Store.
//
//go:generate mockgen -source=store.go -destination=repository_mock.go -package=inventory
type Repository interface {
	// Get returns ErrKeyNotFound when nothing has been stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites every given key.
	Put(ctx context.Context, records ...Record) error
}

type state struct {
	products     []Product
	transactions []ledger.Transaction
	darkMode     bool
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// Store is the single source of truth for the catalog and the ledger.
// A nil *Store is a programming error and panics on use.
type Store struct {
	repo Repository
	now  func() time.Time

	mu      sync.Mutex
	state   state
	version uint64
	subs    []subscriber
	nextSub int

	// publishMu keeps notifications in version order without holding mu while subscribers run.
	publishMu sync.Mutex
}

// NewStore loads the persisted state. Missing keys start empty; a value that cannot be
// decoded fails with ErrCorruptState.
func NewStore(ctx context.Context, repo Repository) (*Store, error) {
	s := &Store{
		repo: repo,
		now:  time.Now,
	}

	var (
		products     []storedProduct
		transactions []storedTransaction
	)

	if err := load(ctx, repo, KeyProducts, &products); err != nil {
		return nil, err
	}

	if err := load(ctx, repo, KeyTransactions, &transactions); err != nil {
		return nil, err
	}

	if err := load(ctx, repo, KeyDarkMode, &s.state.darkMode); err != nil {
		return nil, err
	}

	s.state.products = decodeProducts(products)
	s.state.transactions = decodeTransactions(transactions)

	return s, nil
}

func load(ctx context.Context, repo Repository, key string, dst any) error {
	raw, err := repo.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrCorruptState, key, err)
	}

	return nil
}

// AddProduct appends a product and the expense of buying its stock
// (cost price times quantity, described as "Custo inicial: <name>").
func (s *Store) AddProduct(ctx context.Context, np NewProduct) (Product, error) {
	s.mu.Lock()

	p := Product{
		ID:            uuid.New(),
		Name:          np.Name,
		SKU:           np.SKU,
		SalePrice:     np.SalePrice,
		CostPrice:     np.CostPrice,
		StockQuantity: np.StockQuantity,
		SoldQuantity:  0,
		IsSold:        false,
	}

	expense := ledger.New(
		ledger.TypeExpense,
		np.CostPrice.Mul(decimal.NewFromInt(int64(np.StockQuantity))),
		"Custo inicial: "+np.Name,
		s.now(),
	)

	next := s.state
	next.products = append(slices.Clone(s.state.products), p)
	next.transactions = append(slices.Clone(s.state.transactions), expense)

	if err := s.commit(ctx, next, KeyProducts, KeyTransactions); err != nil {
		return Product{}, fmt.Errorf("adding product: %w", err)
	}

	return p, nil
}

// UpdateProduct merges patch into the product with the given id. Unknown ids are ignored.
// The SKU is not regenerated and past transactions are left untouched.
func (s *Store) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) error {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := s.state
	next.products = slices.Clone(s.state.products)
	next.products[idx] = patch.apply(next.products[idx])

	if err := s.commit(ctx, next, KeyProducts); err != nil {
		return fmt.Errorf("updating product %s: %w", id, err)
	}

	return nil
}

// DeleteProduct removes the product with the given id. Its transactions stay in the ledger.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}

	next := s.state
	next.products = slices.Delete(slices.Clone(s.state.products), idx, idx+1)

	if err := s.commit(ctx, next, KeyProducts); err != nil {
		return fmt.Errorf("deleting product %s: %w", id, err)
	}

	return nil
}

// MarkAsSold records the sale of an active product: a profit entry of sale price minus cost
// price ("Venda: <name>"), IsSold set and SoldQuantity set to the stock held.
// Unknown or already sold products are ignored.
func (s *Store) MarkAsSold(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()

	idx := s.indexOf(id)
	if idx < 0 || s.state.products[idx].IsSold {
		s.mu.Unlock()
		return nil
	}

	p := s.state.products[idx]
	profit := ledger.New(ledger.TypeProfit, p.SalePrice.Sub(p.CostPrice), "Venda: "+p.Name, s.now())

	p.IsSold = true
	p.SoldQuantity = p.StockQuantity

	next := s.state
	next.products = slices.Clone(s.state.products)
	next.products[idx] = p
	next.transactions = append(slices.Clone(s.state.transactions), profit)

	if err := s.commit(ctx, next, KeyProducts, KeyTransactions); err != nil {
		return fmt.Errorf("marking product %s as sold: %w", id, err)
	}

	return nil
}

// ToggleDarkMode flips the persisted display preference.
func (s *Store) ToggleDarkMode(ctx context.Context) error {
	s.mu.Lock()

	next := s.state
	next.darkMode = !s.state.darkMode

	if err := s.commit(ctx, next, KeyDarkMode); err != nil {
		return fmt.Errorf("toggling dark mode: %w", err)
	}

	return nil
}

// Product returns the product with the given id or ErrNotFound.
func (s *Store) Product(id uuid.UUID) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return Product{}, ErrNotFound
	}

	return s.state.products[idx], nil
}

func (s *Store) Products() []Product {
	return s.Snapshot().Products()
}

func (s *Store) Transactions() []ledger.Transaction {
	return s.Snapshot().Transactions()
}

func (s *Store) DarkMode() bool {
	return s.Snapshot().DarkMode
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

// Subscribe registers fn to receive every snapshot produced after this call, in order, and
// returns the current snapshot together with a function that cancels the subscription.
// fn runs on the goroutine of the mutating caller and must not mutate the store.
func (s *Store) Subscribe(fn func(Snapshot)) (Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
	}

	return s.snapshotLocked(), unsubscribe
}

func (s *Store) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(s.state.products, func(p Product) bool { return p.ID == id })
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version:      s.version,
		DarkMode:     s.state.darkMode,
		products:     s.state.products,
		transactions: s.state.transactions,
	}
}

// commit persists the given keys of next, installs it and notifies subscribers.
// It must be called with mu held and always releases it.
func (s *Store) commit(ctx context.Context, next state, keys ...string) error {
	records := make([]Record, 0, len(keys))

	for _, key := range keys {
		var v any

		switch key {
		case KeyProducts:
			v = encodeProducts(next.products)
		case KeyTransactions:
			v = encodeTransactions(next.transactions)
		case KeyDarkMode:
			v = next.darkMode
		}

		raw, err := json.Marshal(v)
		if err != nil {
			s.mu.Unlock()
			return fmt.Errorf("encoding %s: %w", key, err)
		}

		records = append(records, Record{Key: key, Value: raw})
	}

	if err := s.repo.Put(ctx, records...); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persisting %v: %w", keys, err)
	}

	s.state = next
	s.version++

	snap := s.snapshotLocked()
	subs := slices.Clone(s.subs)

	s.publishMu.Lock()
	s.mu.Unlock()

	defer s.publishMu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}

	return nil
}
