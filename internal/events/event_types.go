package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered    EventType = "account_registered"
	EventOrderPlaced          EventType = "order_placed"
	EventOrderStatusChanged   EventType = "order_status_changed"
	EventPaymentStatusChanged EventType = "payment_status_changed"
)

// Event represents a domain event emitted by the stores.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	OrderID   int64       `json:"order_id,omitempty"`
	AccountID string      `json:"account_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

// OrderPlacedPayload payload.
type OrderPlacedPayload struct {
	TotalCost float64 `json:"total_cost"`
	ItemCount int     `json:"item_count"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	Status string `json:"status"`
}
