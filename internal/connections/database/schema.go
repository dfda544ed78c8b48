package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS invoices (
		id             SERIAL PRIMARY KEY,
		client_name    TEXT NOT NULL DEFAULT '',
		description    TEXT NOT NULL DEFAULT '',
		payment_method TEXT NOT NULL DEFAULT '',
		total          NUMERIC(12,2) NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'pending',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id         SERIAL PRIMARY KEY,
		invoice_id INT REFERENCES invoices(id),
		type       TEXT NOT NULL,
		table_id   TEXT,
		status     TEXT NOT NULL DEFAULT 'pending',
		notes      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id         SERIAL PRIMARY KEY,
		order_id   INT NOT NULL REFERENCES orders(id),
		name       TEXT NOT NULL,
		quantity   INT NOT NULL CHECK (quantity >= 1),
		unit_price NUMERIC(12,2) NOT NULL,
		variant_id INT
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		phone    TEXT PRIMARY KEY,
		name     TEXT NOT NULL DEFAULT '',
		address  TEXT NOT NULL DEFAULT '',
		address2 TEXT NOT NULL DEFAULT '',
		address3 TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS couriers (
		phone TEXT PRIMARY KEY,
		name  TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id             SERIAL PRIMARY KEY,
		order_id       INT NOT NULL REFERENCES orders(id),
		invoice_id     INT NOT NULL REFERENCES invoices(id),
		customer_phone TEXT NOT NULL REFERENCES customers(phone),
		courier_phone  TEXT NOT NULL REFERENCES couriers(phone),
		address        TEXT NOT NULL DEFAULT '',
		fee            NUMERIC(12,2) NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'pending',
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id    SERIAL PRIMARY KEY,
		name  TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS products_name_lower_idx ON products (LOWER(name))`,
	`CREATE TABLE IF NOT EXISTS product_variants (
		id         SERIAL PRIMARY KEY,
		product_id INT NOT NULL REFERENCES products(id),
		size       TEXT NOT NULL DEFAULT '',
		price      NUMERIC(12,2) NOT NULL DEFAULT 0
	)`,
}

// Migrate creates the schema if it does not exist yet. Statements are
// idempotent so repeated startups are safe.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
