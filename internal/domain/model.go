package domain

import "time"

// Fulfillment types for an order.
const (
	FulfillmentTable    = "table"
	FulfillmentDelivery = "delivery"
	FulfillmentTakeout  = "takeout"
)

// Order statuses.
const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// Invoice statuses.
const (
	InvoicePending   = "pending"
	InvoicePaid      = "paid"
	InvoiceCancelled = "cancelled"
)

// Delivery statuses.
const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryCancelled = "cancelled"
)

// Invoice is the customer-facing bill. The description holds a human-readable
// summary of the line items; the total is written back once pricing is known.
type Invoice struct {
	ID            int       `json:"id"`
	ClientName    string    `json:"client_name"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"payment_method"`
	Total         float64   `json:"total"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Order is one customer request. InvoiceID is nullable because an order can
// exist before its invoice in some flows (running tabs).
type Order struct {
	ID        int        `json:"id"`
	InvoiceID *int       `json:"invoice_id,omitempty"`
	Type      string     `json:"type"`
	TableID   *string    `json:"table_id,omitempty"`
	Status    string     `json:"status"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []LineItem `json:"items,omitempty"`
	Invoice   *Invoice   `json:"invoice,omitempty"`
	Delivery  *Delivery  `json:"delivery,omitempty"`
}

// LineItem is one priced product selection within an order. The unit price is
// frozen at order time; later catalog changes never touch existing rows.
type LineItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	VariantID *int    `json:"variant_id,omitempty"`
}

// Customer is keyed by phone number. Address slots are append-only: Address is
// the primary, Address2 and Address3 fill in order and are never overwritten.
type Customer struct {
	Phone    string `json:"phone"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Address2 string `json:"address2,omitempty"`
	Address3 string `json:"address3,omitempty"`
}

// Courier is keyed by phone number. The name is optional.
type Courier struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
}

// Delivery links an order and its invoice to a customer and courier.
type Delivery struct {
	ID            int       `json:"id"`
	OrderID       int       `json:"order_id"`
	InvoiceID     int       `json:"invoice_id"`
	CustomerPhone string    `json:"customer_phone"`
	CourierPhone  string    `json:"courier_phone"`
	Address       string    `json:"address"`
	Fee           float64   `json:"fee"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Product is a catalog entry matched case-insensitively by name.
type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Variant is a product's purchasable size with its own base price.
type Variant struct {
	ID        int     `json:"id"`
	ProductID int     `json:"product_id"`
	Size      string  `json:"size"`
	Price     float64 `json:"price"`
}
