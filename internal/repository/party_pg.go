package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria-backend/internal/domain"
)

// PartyPG implements party.Store on Postgres. Creates use ON CONFLICT so
// concurrent submissions for the same phone never produce duplicates.
type PartyPG struct {
	m *Manager
}

func NewPartyPG(m *Manager) *PartyPG {
	return &PartyPG{m: m}
}

func (r *PartyPG) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	var c domain.Customer
	err := r.m.db(ctx).QueryRow(ctx,
		`SELECT phone, name, address, address2, address3 FROM customers WHERE phone = $1`,
		phone).Scan(&c.Phone, &c.Name, &c.Address, &c.Address2, &c.Address3)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find customer %s: %w", phone, err)
	}
	return &c, nil
}

func (r *PartyPG) CreateCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.m.db(ctx).Exec(ctx,
		`INSERT INTO customers (phone, name, address) VALUES ($1, $2, $3)
		 ON CONFLICT (phone) DO NOTHING`,
		c.Phone, c.Name, c.Address)
	if err != nil {
		return fmt.Errorf("create customer %s: %w", c.Phone, err)
	}
	return nil
}

func (r *PartyPG) UpdateCustomerAddresses(ctx context.Context, c domain.Customer) error {
	_, err := r.m.db(ctx).Exec(ctx,
		`UPDATE customers SET address = $2, address2 = $3, address3 = $4 WHERE phone = $1`,
		c.Phone, c.Address, c.Address2, c.Address3)
	if err != nil {
		return fmt.Errorf("update customer %s: %w", c.Phone, err)
	}
	return nil
}

func (r *PartyPG) FindCourierByPhone(ctx context.Context, phone string) (*domain.Courier, error) {
	var c domain.Courier
	err := r.m.db(ctx).QueryRow(ctx,
		`SELECT phone, name FROM couriers WHERE phone = $1`,
		phone).Scan(&c.Phone, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find courier %s: %w", phone, err)
	}
	return &c, nil
}

func (r *PartyPG) CreateCourier(ctx context.Context, c domain.Courier) error {
	_, err := r.m.db(ctx).Exec(ctx,
		`INSERT INTO couriers (phone, name) VALUES ($1, $2)
		 ON CONFLICT (phone) DO NOTHING`,
		c.Phone, c.Name)
	if err != nil {
		return fmt.Errorf("create courier %s: %w", c.Phone, err)
	}
	return nil
}
