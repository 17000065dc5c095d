package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrSKUTaken        = errors.New("sku already exists")

	// ErrStockConflict: the conditional decrement matched no row, either the
	// product is gone or the remaining stock no longer covers the quantity.
	ErrStockConflict = errors.New("stock update rejected")
)
