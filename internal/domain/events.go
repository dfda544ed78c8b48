package domain

import "time"

// Event topics.
const (
	TopicAll     = "all"
	TopicKitchen = "kitchen"
)

// Event types.
const (
	EventOrderCreated     = "order.created"
	EventOrderUpdated     = "order.updated"
	EventHandoffRequested = "handoff.requested"
)

// Event is the payload broadcast to dashboard and kitchen subscribers.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    int       `json:"order_id,omitempty"`
	InvoiceID  int       `json:"invoice_id,omitempty"`
	OrderType  string    `json:"order_type,omitempty"`
	Status     string    `json:"status,omitempty"`
	Total      float64   `json:"total,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// CourierMessage is the out-of-band note queued for an assigned courier,
// keyed by the courier's phone number.
type CourierMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
