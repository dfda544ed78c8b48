package invoice

import (
	"context"
	"fmt"

	"pizzeria-backend/internal/domain"
)

// Store is the invoice persistence the ledger needs.
type Store interface {
	CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error)
	UpdateInvoiceTotals(ctx context.Context, id int, description string, total float64) error
	UpdateInvoiceStatus(ctx context.Context, id int, status string) error
	FindInvoiceByID(ctx context.Context, id int) (*domain.Invoice, error)
}

// Ledger owns the invoice aggregate. It stores what it is told: totals come
// from the orchestrator's finalize step, never from summing rows here.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

// Create opens a pending invoice for a new order.
func (l *Ledger) Create(ctx context.Context, clientName, paymentMethod, description string) (*domain.Invoice, error) {
	inv, err := l.store.CreateInvoice(ctx, domain.Invoice{
		ClientName:    clientName,
		PaymentMethod: paymentMethod,
		Description:   description,
		Status:        domain.InvoicePending,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return inv, nil
}

// Finalize writes the composed description and the supplied total back onto
// the invoice once line items are priced.
func (l *Ledger) Finalize(ctx context.Context, id int, description string, total float64) error {
	if err := l.store.UpdateInvoiceTotals(ctx, id, description, total); err != nil {
		return fmt.Errorf("finalize invoice %d: %w", id, err)
	}
	return nil
}

// Cancel transitions the invoice to cancelled, leaving the total and
// description untouched.
func (l *Ledger) Cancel(ctx context.Context, id int) error {
	if err := l.store.UpdateInvoiceStatus(ctx, id, domain.InvoiceCancelled); err != nil {
		return fmt.Errorf("cancel invoice %d: %w", id, err)
	}
	return nil
}

// Get loads one invoice.
func (l *Ledger) Get(ctx context.Context, id int) (*domain.Invoice, error) {
	inv, err := l.store.FindInvoiceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find invoice %d: %w", id, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
	}
	return inv, nil
}
