package catalog

import "context"

// ProductStore is what the ledger needs from persistence: point reads and an
// atomic conditional decrement. Soft-deleted products are still visible here;
// only listings hide them.
type ProductStore interface {
	FindProductByID(ctx context.Context, id string) (*Product, error)
	DecrementStock(ctx context.Context, id, size string, qty int) error
}

// Ledger tracks per-product, per-size stock counts.
type Ledger struct {
	Store ProductStore
}

// CheckAvailability reads current stock for (productID, size). It never
// mutates anything. A size absent from the stock map counts as 0.
func (l *Ledger) CheckAvailability(ctx context.Context, productID, size string, qty int) (Availability, error) {
	p, err := l.Store.FindProductByID(ctx, productID)
	if err != nil {
		return Availability{}, err
	}
	avail := p.Stock[size]
	return Availability{
		Sufficient:  avail >= qty,
		Available:   avail,
		ProductName: p.Name,
	}, nil
}

// Decrement subtracts qty from stock[size]. The store applies the update only
// while the remaining stock still covers qty, so two committers racing on the
// same product/size cannot both win: the loser gets ErrStockConflict.
func (l *Ledger) Decrement(ctx context.Context, productID, size string, qty int) error {
	return l.Store.DecrementStock(ctx, productID, size, qty)
}
