package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria-backend/internal/domain"
)

// OrdersPG implements orders.Store on Postgres.
type OrdersPG struct {
	m *Manager
}

func NewOrdersPG(m *Manager) *OrdersPG {
	return &OrdersPG{m: m}
}

func (r *OrdersPG) CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error) {
	err := r.m.db(ctx).QueryRow(ctx,
		`INSERT INTO orders (invoice_id, type, table_id, status, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		o.InvoiceID, o.Type, o.TableID, o.Status, o.Notes).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return &o, nil
}

func (r *OrdersPG) AddLineItems(ctx context.Context, orderID int, items []domain.LineItem) ([]domain.LineItem, error) {
	db := r.m.db(ctx)
	out := make([]domain.LineItem, 0, len(items))
	for _, item := range items {
		item.OrderID = orderID
		err := db.QueryRow(ctx,
			`INSERT INTO order_items (order_id, name, quantity, unit_price, variant_id)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			orderID, item.Name, item.Quantity, item.UnitPrice, item.VariantID).
			Scan(&item.ID)
		if err != nil {
			return nil, fmt.Errorf("insert order item %q: %w", item.Name, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *OrdersPG) CreateDelivery(ctx context.Context, d domain.Delivery) (*domain.Delivery, error) {
	err := r.m.db(ctx).QueryRow(ctx,
		`INSERT INTO deliveries (order_id, invoice_id, customer_phone, courier_phone, address, fee, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		d.OrderID, d.InvoiceID, d.CustomerPhone, d.CourierPhone, d.Address, d.Fee, d.Status).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert delivery: %w", err)
	}
	return &d, nil
}

func (r *OrdersPG) FindOrderByID(ctx context.Context, id int) (*domain.Order, error) {
	db := r.m.db(ctx)

	var o domain.Order
	err := db.QueryRow(ctx,
		`SELECT id, invoice_id, type, table_id, status, notes, created_at
		   FROM orders WHERE id = $1`,
		id).Scan(&o.ID, &o.InvoiceID, &o.Type, &o.TableID, &o.Status, &o.Notes, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order %d: %w", id, err)
	}

	if o.InvoiceID != nil {
		var inv domain.Invoice
		err := db.QueryRow(ctx,
			`SELECT id, client_name, description, payment_method, total, status, created_at
			   FROM invoices WHERE id = $1`,
			*o.InvoiceID).Scan(&inv.ID, &inv.ClientName, &inv.Description,
			&inv.PaymentMethod, &inv.Total, &inv.Status, &inv.CreatedAt)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("load invoice for order %d: %w", id, err)
		}
		if err == nil {
			o.Invoice = &inv
		}
	}

	rows, err := db.Query(ctx,
		`SELECT id, order_id, name, quantity, unit_price, variant_id
		   FROM order_items WHERE order_id = $1 ORDER BY id`,
		id)
	if err != nil {
		return nil, fmt.Errorf("load items for order %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &item.Quantity,
			&item.UnitPrice, &item.VariantID); err != nil {
			return nil, fmt.Errorf("scan item for order %d: %w", id, err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load items for order %d: %w", id, err)
	}

	var d domain.Delivery
	err = db.QueryRow(ctx,
		`SELECT id, order_id, invoice_id, customer_phone, courier_phone, address, fee, status, created_at
		   FROM deliveries WHERE order_id = $1`,
		id).Scan(&d.ID, &d.OrderID, &d.InvoiceID, &d.CustomerPhone, &d.CourierPhone,
		&d.Address, &d.Fee, &d.Status, &d.CreatedAt)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("load delivery for order %d: %w", id, err)
	}
	if err == nil {
		o.Delivery = &d
	}

	return &o, nil
}

func (r *OrdersPG) UpdateOrder(ctx context.Context, id int, status, notes *string) error {
	tag, err := r.m.db(ctx).Exec(ctx,
		`UPDATE orders
		    SET status = COALESCE($2, status),
		        notes  = COALESCE($3, notes)
		  WHERE id = $1`,
		id, status, notes)
	if err != nil {
		return fmt.Errorf("update order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	return nil
}
