package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated       = "OrderCreated"
	EventOrderStatusChanged = "OrderStatusChanged"
)

// Envelope is the wire format shared by every order event.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID    string     `json:"order_id"`
	OrderNum   string     `json:"order_num"`
	UserID     string     `json:"user_id"`
	Items      []LineItem `json:"items"`
	TotalPrice int        `json:"total_price"`
	Status     Status     `json:"status"`
}

type OrderStatusChangedPayload struct {
	OrderID  string `json:"order_id"`
	OrderNum string `json:"order_num"`
	Status   Status `json:"status"`
}
