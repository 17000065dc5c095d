package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// memStore is an in-memory ProductStore with the same conditional-decrement
// semantics as the postgres repo.
type memStore struct {
	mu       sync.Mutex
	products map[string]*Product
}

func newMemStore(ps ...*Product) *memStore {
	m := &memStore{products: map[string]*Product{}}
	for _, p := range ps {
		m.products[p.ID] = p
	}
	return m
}

func (m *memStore) FindProductByID(ctx context.Context, id string) (*Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, okP := m.products[id]
	if !okP {
		return nil, ErrProductNotFound
	}
	cp := *p
	stock := make(map[string]int, len(p.Stock))
	for k, v := range p.Stock {
		stock[k] = v
	}
	cp.Stock = stock
	return &cp, nil
}

func (m *memStore) DecrementStock(ctx context.Context, id, size string, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, okP := m.products[id]
	if !okP {
		return ErrStockConflict
	}
	avail, okS := p.Stock[size]
	if !okS || avail < qty {
		return ErrStockConflict
	}
	p.Stock[size] = avail - qty
	return nil
}

func testProduct() *Product {
	return &Product{ID: "p1", Name: "반팔티", Stock: map[string]int{"M": 5, "L": 2}}
}

func TestCheckAvailability(t *testing.T) {
	store := newMemStore(testProduct())
	ledger := &Ledger{Store: store}
	ctx := context.Background()

	av, err := ledger.CheckAvailability(ctx, "p1", "M", 3)
	if err != nil {
		t.Fatal(err)
	}
	if !av.Sufficient || av.Available != 5 || av.ProductName != "반팔티" {
		t.Fatalf("want sufficient with 5 available, got %+v", av)
	}

	av, err = ledger.CheckAvailability(ctx, "p1", "L", 5)
	if err != nil {
		t.Fatal(err)
	}
	if av.Sufficient || av.Available != 2 {
		t.Fatalf("want insufficient with 2 available, got %+v", av)
	}

	// size absent from the stock map counts as zero
	av, err = ledger.CheckAvailability(ctx, "p1", "XL", 1)
	if err != nil {
		t.Fatal(err)
	}
	if av.Sufficient || av.Available != 0 {
		t.Fatalf("want insufficient with 0 available, got %+v", av)
	}

	if _, err := ledger.CheckAvailability(ctx, "nope", "M", 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestCheckAvailabilityNeverMutates(t *testing.T) {
	store := newMemStore(testProduct())
	ledger := &Ledger{Store: store}
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		if _, err := ledger.CheckAvailability(ctx, "p1", "M", 3); err != nil {
			t.Fatal(err)
		}
	}
	if got := store.products["p1"].Stock["M"]; got != 5 {
		t.Fatalf("check mutated stock: M=%d", got)
	}
}

func TestDecrement(t *testing.T) {
	store := newMemStore(testProduct())
	ledger := &Ledger{Store: store}
	ctx := context.Background()

	if err := ledger.Decrement(ctx, "p1", "M", 3); err != nil {
		t.Fatal(err)
	}
	if got := store.products["p1"].Stock["M"]; got != 2 {
		t.Fatalf("want M=2, got %d", got)
	}

	// conditional update refuses to drive stock negative
	if err := ledger.Decrement(ctx, "p1", "L", 5); !errors.Is(err, ErrStockConflict) {
		t.Fatalf("want ErrStockConflict, got %v", err)
	}
	if got := store.products["p1"].Stock["L"]; got != 2 {
		t.Fatalf("failed decrement must not change stock, got L=%d", got)
	}

	if err := ledger.Decrement(ctx, "gone", "M", 1); !errors.Is(err, ErrStockConflict) {
		t.Fatalf("want ErrStockConflict for missing product, got %v", err)
	}
}
