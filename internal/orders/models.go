package orders

import (
	"encoding/json"
	"time"
)

// LineItem is one (product, size, qty) tuple of an order request. Price is a
// client-submitted passthrough; the core never re-prices.
type LineItem struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
	Price     int    `json:"price,omitempty"`
}

type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	OrderNum   string          `json:"orderNum"`
	Items      []LineItem      `json:"items"`
	TotalPrice int             `json:"totalPrice"`
	ShipTo     json.RawMessage `json:"shipTo"`
	Contact    json.RawMessage `json:"contact"`
	Status     Status          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// Failure describes one line item that could not be covered by stock.
type Failure struct {
	Item    LineItem `json:"item"`
	Message string   `json:"message"`
}

type ListQuery struct {
	Page     int
	PageSize int
	OrderNum string // case-insensitive substring filter
}
