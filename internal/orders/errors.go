package orders

import (
	"errors"
	"fmt"
	"strings"
)

var ErrOrderNotFound = errors.New("order not found")

// InsufficientStockError aggregates every line item that failed the check
// phase. The joined message lets a caller fix the whole order in one go
// instead of retrying item by item.
type InsufficientStockError struct {
	Failures []Failure
}

func (e *InsufficientStockError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, " ")
}

// CommitError marks a deduction that failed after the check phase passed.
// Other items of the same order may already be decremented; there is no
// rollback or compensation step.
type CommitError struct {
	Item LineItem
	Err  error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("stock deduction failed for product %s size %s: %v", e.Item.ProductID, e.Item.Size, e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
