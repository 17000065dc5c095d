package orders

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-shop-orders.git/internal/catalog"
)

// Ledger is the stock subsystem the reserver drives. catalog.Ledger satisfies
// it; tests plug in an in-memory one.
type Ledger interface {
	CheckAvailability(ctx context.Context, productID, size string, qty int) (catalog.Availability, error)
	Decrement(ctx context.Context, productID, size string, qty int) error
}

// Reserver turns a stock check into a stock deduction for a whole order:
// first every item is checked concurrently and all insufficiencies are
// collected, then — only when none failed — every deduction is applied
// concurrently. The two phases never overlap within one call.
type Reserver struct {
	Ledger Ledger
}

// Reserve validates and commits the deductions for items.
//
// A non-empty Failure slice means at least one item had too little stock and
// nothing was deducted. A nil error with empty failures means every deduction
// went through. A *CommitError means the check passed but a deduction failed
// afterwards; items that already committed stay committed.
func (r *Reserver) Reserve(ctx context.Context, items []LineItem) ([]Failure, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var (
		mu       sync.Mutex
		failures []Failure
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, it := range items {
		it := it
		g.Go(func() error {
			av, err := r.Ledger.CheckAvailability(gctx, it.ProductID, it.Size, it.Qty)
			if err != nil {
				return err
			}
			if !av.Sufficient {
				mu.Lock()
				failures = append(failures, Failure{
					Item:    it,
					Message: insufficientMessage(av.ProductName, it.Size, av.Available),
				})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return failures, nil
	}

	c, cctx := errgroup.WithContext(ctx)
	for _, it := range items {
		it := it
		c.Go(func() error {
			if err := r.Ledger.Decrement(cctx, it.ProductID, it.Size, it.Qty); err != nil {
				return &CommitError{Item: it, Err: err}
			}
			return nil
		})
	}
	if err := c.Wait(); err != nil {
		return nil, err
	}
	return nil, nil
}

func insufficientMessage(name, size string, available int) string {
	return fmt.Sprintf("%s의 %s 재고가 부족합니다. 현재 %d개 재고가 있습니다.", name, size, available)
}
