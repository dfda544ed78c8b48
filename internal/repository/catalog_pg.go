package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pizzeria-backend/internal/domain"
)

// CatalogPG implements catalog.Store on Postgres.
type CatalogPG struct {
	m *Manager
}

func NewCatalogPG(m *Manager) *CatalogPG {
	return &CatalogPG{m: m}
}

func (r *CatalogPG) FindVariantByID(ctx context.Context, id int) (*domain.Variant, error) {
	var v domain.Variant
	err := r.m.db(ctx).QueryRow(ctx,
		`SELECT id, product_id, size, price FROM product_variants WHERE id = $1`,
		id).Scan(&v.ID, &v.ProductID, &v.Size, &v.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find variant %d: %w", id, err)
	}
	return &v, nil
}

func (r *CatalogPG) FindVariant(ctx context.Context, productType, size string) (*domain.Variant, error) {
	var v domain.Variant
	err := r.m.db(ctx).QueryRow(ctx,
		`SELECT v.id, v.product_id, v.size, v.price
		   FROM product_variants v
		   JOIN products p ON p.id = v.product_id
		  WHERE LOWER(p.name) = LOWER($1)
		    AND ($2 = '' OR LOWER(v.size) = LOWER($2))
		  ORDER BY v.id
		  LIMIT 1`,
		productType, size).Scan(&v.ID, &v.ProductID, &v.Size, &v.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find variant %q %q: %w", productType, size, err)
	}
	return &v, nil
}

func (r *CatalogPG) FindProductByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.m.db(ctx).QueryRow(ctx,
		`SELECT id, name, price FROM products WHERE LOWER(name) = LOWER($1)`,
		name).Scan(&p.ID, &p.Name, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product %q: %w", name, err)
	}
	return &p, nil
}

// CreateProduct tolerates a concurrent insert of the same name: the unique
// index on LOWER(name) plus DO NOTHING gives ignore-duplicate semantics.
func (r *CatalogPG) CreateProduct(ctx context.Context, name string, price float64) error {
	_, err := r.m.db(ctx).Exec(ctx,
		`INSERT INTO products (name, price) VALUES ($1, $2)
		 ON CONFLICT (LOWER(name)) DO NOTHING`,
		name, price)
	if err != nil {
		return fmt.Errorf("create product %q: %w", name, err)
	}
	return nil
}

func (r *CatalogPG) RenameProduct(ctx context.Context, id int, name string) error {
	_, err := r.m.db(ctx).Exec(ctx,
		`UPDATE products SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("rename product %d: %w", id, err)
	}
	return nil
}
