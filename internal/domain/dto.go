package domain

// CartLine is one product selection as submitted by the client. Up to three
// flavors may be combined on a single pizza.
type CartLine struct {
	Type      string `json:"type"`
	Size      string `json:"size,omitempty"`
	Flavor1   string `json:"flavor1,omitempty"`
	Flavor2   string `json:"flavor2,omitempty"`
	Flavor3   string `json:"flavor3,omitempty"`
	Quantity  int    `json:"quantity"`
	VariantID *int   `json:"variant_id,omitempty"`
}

// SubmitOrderRequest is the transport-agnostic submission payload.
type SubmitOrderRequest struct {
	Type            string     `json:"type"`
	TableID         string     `json:"table_id,omitempty"`
	CustomerPhone   string     `json:"customer_phone,omitempty"`
	CustomerName    string     `json:"customer_name,omitempty"`
	CustomerAddress string     `json:"customer_address,omitempty"`
	AddressSlot     int        `json:"address_slot,omitempty"`
	CourierPhone    string     `json:"courier_phone,omitempty"`
	PaymentMethod   string     `json:"payment_method,omitempty"`
	DeliveryFee     float64    `json:"delivery_fee,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Lines           []CartLine `json:"lines"`
}

// UpdateOrderRequest is a direct field patch; business rules are not re-run.
type UpdateOrderRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ResolvedLine is the catalog resolver's output for one cart line.
type ResolvedLine struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	VariantID *int    `json:"variant_id,omitempty"`
}
