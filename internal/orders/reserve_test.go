package orders

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ariefcatur/go-shop-orders.git/internal/catalog"
)

// fakeLedger mirrors the guarded ledger: checks are pure reads, decrements
// apply only while the remaining stock covers the quantity.
type fakeLedger struct {
	mu    sync.Mutex
	name  map[string]string
	stock map[string]map[string]int

	decrementErr error // forced commit-phase failure when set
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{name: map[string]string{}, stock: map[string]map[string]int{}}
}

func (f *fakeLedger) add(id, name string, stock map[string]int) {
	f.name[id] = name
	f.stock[id] = stock
}

func (f *fakeLedger) CheckAvailability(ctx context.Context, productID, size string, qty int) (catalog.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes, okP := f.stock[productID]
	if !okP {
		return catalog.Availability{}, catalog.ErrProductNotFound
	}
	avail := sizes[size]
	return catalog.Availability{
		Sufficient:  avail >= qty,
		Available:   avail,
		ProductName: f.name[productID],
	}, nil
}

func (f *fakeLedger) Decrement(ctx context.Context, productID, size string, qty int) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	sizes, okP := f.stock[productID]
	if !okP {
		return catalog.ErrStockConflict
	}
	if sizes[size] < qty {
		return catalog.ErrStockConflict
	}
	sizes[size] -= qty
	return nil
}

func (f *fakeLedger) qty(id, size string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stock[id][size]
}

func TestReserveSuccessReducesStock(t *testing.T) {
	led := newFakeLedger()
	led.add("p1", "반팔티", map[string]int{"M": 5, "L": 2})
	r := &Reserver{Ledger: led}

	failures, err := r.Reserve(context.Background(), []LineItem{{ProductID: "p1", Size: "M", Qty: 3}})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Fatalf("want no failures, got %+v", failures)
	}
	if m, l := led.qty("p1", "M"), led.qty("p1", "L"); m != 2 || l != 2 {
		t.Fatalf("want stock M=2 L=2, got M=%d L=%d", m, l)
	}
}

func TestReserveInsufficientLeavesStockUntouched(t *testing.T) {
	led := newFakeLedger()
	led.add("p1", "반팔티", map[string]int{"M": 5, "L": 2})
	r := &Reserver{Ledger: led}

	failures, err := r.Reserve(context.Background(), []LineItem{
		{ProductID: "p1", Size: "M", Qty: 3},
		{ProductID: "p1", Size: "L", Qty: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 {
		t.Fatalf("want exactly one failure, got %+v", failures)
	}
	f := failures[0]
	if f.Item.Size != "L" || f.Item.Qty != 5 {
		t.Fatalf("failure should carry the offending item, got %+v", f.Item)
	}
	if !strings.Contains(f.Message, "현재 2개") {
		t.Fatalf("message should name the available quantity, got %q", f.Message)
	}
	// no partial deduction from the check phase
	if m, l := led.qty("p1", "M"), led.qty("p1", "L"); m != 5 || l != 2 {
		t.Fatalf("stock must be unchanged, got M=%d L=%d", m, l)
	}
}

func TestReserveCollectsEveryFailure(t *testing.T) {
	led := newFakeLedger()
	led.add("p1", "상품1", map[string]int{"M": 1})
	led.add("p2", "상품2", map[string]int{"M": 10})
	led.add("p3", "상품3", map[string]int{"L": 0})
	r := &Reserver{Ledger: led}

	failures, err := r.Reserve(context.Background(), []LineItem{
		{ProductID: "p1", Size: "M", Qty: 2},
		{ProductID: "p2", Size: "M", Qty: 3},
		{ProductID: "p3", Size: "L", Qty: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	// 2 insufficient of 3: no short-circuit on the first failure
	if len(failures) != 2 {
		t.Fatalf("want 2 failures, got %d: %+v", len(failures), failures)
	}
}

func TestReserveEmptyItems(t *testing.T) {
	r := &Reserver{Ledger: newFakeLedger()}
	failures, err := r.Reserve(context.Background(), nil)
	if err != nil || len(failures) != 0 {
		t.Fatalf("empty order must be a no-op, got failures=%v err=%v", failures, err)
	}
}

func TestReserveProductNotFound(t *testing.T) {
	r := &Reserver{Ledger: newFakeLedger()}
	_, err := r.Reserve(context.Background(), []LineItem{{ProductID: "ghost", Size: "M", Qty: 1}})
	if !errors.Is(err, catalog.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestReserveCommitFailureIsCommitError(t *testing.T) {
	led := newFakeLedger()
	led.add("p1", "반팔티", map[string]int{"M": 5})
	led.decrementErr = catalog.ErrStockConflict
	r := &Reserver{Ledger: led}

	_, err := r.Reserve(context.Background(), []LineItem{{ProductID: "p1", Size: "M", Qty: 1}})
	var ce *CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("want *CommitError, got %v", err)
	}
	if ce.Item.ProductID != "p1" {
		t.Fatalf("commit error should carry the item, got %+v", ce.Item)
	}
}

// Two reservations racing for the same 3 units of stock: with the guarded
// decrement at most one order wins and stock never goes negative. The loser
// fails either in its check phase (failure list) or in its commit phase
// (CommitError), depending on the interleaving.
func TestReserveConcurrentDoubleSpend(t *testing.T) {
	led := newFakeLedger()
	led.add("p1", "반팔티", map[string]int{"M": 3})
	r := &Reserver{Ledger: led}
	items := []LineItem{{ProductID: "p1", Size: "M", Qty: 3}}

	type result struct {
		failures []Failure
		err      error
	}
	results := make(chan result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fs, err := r.Reserve(context.Background(), items)
			results <- result{fs, err}
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for res := range results {
		if res.err == nil && len(res.failures) == 0 {
			wins++
			continue
		}
		var ce *CommitError
		if len(res.failures) == 0 && !errors.As(res.err, &ce) {
			t.Fatalf("loser must fail via failures or CommitError, got %v", res.err)
		}
	}
	if wins > 1 {
		t.Fatalf("both reservations won against stock of 3")
	}
	if got := led.qty("p1", "M"); got < 0 {
		t.Fatalf("stock went negative: %d", got)
	}
}
