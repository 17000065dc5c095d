package catalog

import "time"

type Product struct {
	ID          string         `json:"id"`
	SKU         string         `json:"sku"`
	Name        string         `json:"name"`
	Sizes       []string       `json:"size"`
	Image       string         `json:"image"`
	Category    []string       `json:"category"`
	Description string         `json:"description"`
	Price       int            `json:"price"`
	Stock       map[string]int `json:"stock"` // size label -> qty
	Status      string         `json:"status"`
	IsDeleted   bool           `json:"isDeleted"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Availability is the result of a point-in-time stock check. It carries the
// product name so callers can build a user-facing message without a second read.
type Availability struct {
	Sufficient  bool
	Available   int
	ProductName string
}

type ListQuery struct {
	Page     int
	PageSize int
	Name     string // case-insensitive substring filter
}
