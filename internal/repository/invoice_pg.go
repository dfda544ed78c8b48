package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria-backend/internal/domain"
)

// InvoicePG implements invoice.Store on Postgres.
type InvoicePG struct {
	m *Manager
}

func NewInvoicePG(m *Manager) *InvoicePG {
	return &InvoicePG{m: m}
}

func (r *InvoicePG) CreateInvoice(ctx context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	err := r.m.db(ctx).QueryRow(ctx,
		`INSERT INTO invoices (client_name, description, payment_method, total, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		inv.ClientName, inv.Description, inv.PaymentMethod, inv.Total, inv.Status).
		Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoicePG) UpdateInvoiceTotals(ctx context.Context, id int, description string, total float64) error {
	tag, err := r.m.db(ctx).Exec(ctx,
		`UPDATE invoices SET description = $2, total = $3 WHERE id = $1`,
		id, description, total)
	if err != nil {
		return fmt.Errorf("update invoice %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *InvoicePG) UpdateInvoiceStatus(ctx context.Context, id int, status string) error {
	tag, err := r.m.db(ctx).Exec(ctx,
		`UPDATE invoices SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update invoice %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %d", domain.ErrNotFound, id)
	}
	return nil
}

func (r *InvoicePG) FindInvoiceByID(ctx context.Context, id int) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.m.db(ctx).QueryRow(ctx,
		`SELECT id, client_name, description, payment_method, total, status, created_at
		   FROM invoices WHERE id = $1`,
		id).Scan(&inv.ID, &inv.ClientName, &inv.Description, &inv.PaymentMethod,
		&inv.Total, &inv.Status, &inv.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invoice %d: %w", id, err)
	}
	return &inv, nil
}
