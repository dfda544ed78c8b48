package catalog

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"pizzeria-backend/internal/config"
	"pizzeria-backend/internal/domain"
)

const pizzaType = "pizza"

// Store is the read/write catalog access the resolver needs.
type Store interface {
	FindVariantByID(ctx context.Context, id int) (*domain.Variant, error)
	// FindVariant resolves a product name + size to a variant. A nil variant
	// with nil error means nothing matched.
	FindVariant(ctx context.Context, productType, size string) (*domain.Variant, error)
	FindProductByName(ctx context.Context, name string) (*domain.Product, error)
	CreateProduct(ctx context.Context, name string, price float64) error
	RenameProduct(ctx context.Context, id int, name string) error
}

// Resolver turns cart lines into display names and frozen unit prices,
// applying the pizza flavor surcharge rules.
type Resolver struct {
	store       Store
	special     flavorSet
	traditional flavorSet
	surcharge   map[string]float64
	threeFlavor float64
	log         *zap.Logger
}

func NewResolver(store Store, cfg config.Catalog, log *zap.Logger) *Resolver {
	surcharge := make(map[string]float64, len(cfg.SpecialSurcharge))
	for size, amount := range cfg.SpecialSurcharge {
		surcharge[normalizeFlavor(size)] = amount
	}
	return &Resolver{
		store:       store,
		special:     newFlavorSet(specialFlavors, cfg.ExtraSpecialFlavors),
		traditional: newFlavorSet(traditionalFlavors),
		surcharge:   surcharge,
		threeFlavor: cfg.ThreeFlavorSurcharge,
		log:         log,
	}
}

// Resolve prices one cart line. An explicit variant reference that does not
// exist fails with ErrNotFound; free-text resolution never fails and defaults
// the price to zero when no catalog row matches.
func (r *Resolver) Resolve(ctx context.Context, line domain.CartLine) (domain.ResolvedLine, error) {
	resolved := domain.ResolvedLine{
		Name:      ComposeName(line),
		Quantity:  line.Quantity,
		VariantID: line.VariantID,
	}
	if resolved.Quantity < 1 {
		resolved.Quantity = 1
	}

	var base float64
	switch {
	case line.VariantID != nil:
		variant, err := r.store.FindVariantByID(ctx, *line.VariantID)
		if err != nil {
			return domain.ResolvedLine{}, fmt.Errorf("resolve variant %d: %w", *line.VariantID, err)
		}
		if variant == nil {
			return domain.ResolvedLine{}, fmt.Errorf("%w: variant %d", domain.ErrNotFound, *line.VariantID)
		}
		base = variant.Price
	default:
		variant, err := r.store.FindVariant(ctx, line.Type, line.Size)
		if err != nil {
			return domain.ResolvedLine{}, fmt.Errorf("resolve %q %q: %w", line.Type, line.Size, err)
		}
		if variant != nil {
			base = variant.Price
			resolved.VariantID = &variant.ID
		}
	}

	resolved.UnitPrice = base
	if strings.EqualFold(strings.TrimSpace(line.Type), pizzaType) {
		resolved.UnitPrice += r.flavorSurcharge(line)
	}
	return resolved, nil
}

// flavorSurcharge applies the special-flavor surcharge at most once per line,
// plus the flat three-flavor surcharge when all three slots are used. Names
// outside the vocabulary are kept as free text and never surcharged.
func (r *Resolver) flavorSurcharge(line domain.CartLine) float64 {
	var extra float64
	flavors := presentFlavors(line)
	for _, f := range flavors {
		if !r.special.contains(f) && !r.traditional.contains(f) {
			r.log.Debug("unknown_flavor", zap.String("flavor", f))
		}
	}
	for _, f := range flavors {
		if r.special.contains(f) {
			extra += r.surcharge[normalizeFlavor(line.Size)]
			break
		}
	}
	if len(flavors) == 3 {
		extra += r.threeFlavor
	}
	return extra
}

// EnsureProduct keeps the catalog in sync with names seen on orders: missing
// products are created, and a row whose stored casing differs from the
// resolved name is renamed. Callers treat failures as non-fatal.
func (r *Resolver) EnsureProduct(ctx context.Context, name string, price float64) {
	product, err := r.store.FindProductByName(ctx, name)
	if err != nil {
		r.log.Warn("catalog_lookup_failed", zap.String("product", name), zap.Error(err))
		return
	}
	switch {
	case product == nil:
		if err := r.store.CreateProduct(ctx, name, price); err != nil {
			r.log.Warn("catalog_create_failed", zap.String("product", name), zap.Error(err))
		}
	case product.Name != name:
		if err := r.store.RenameProduct(ctx, product.ID, name); err != nil {
			r.log.Warn("catalog_rename_failed", zap.String("product", name), zap.Error(err))
		}
	}
}

// ComposeName renders the display name for a cart line: the product type,
// then size and first flavor separated by spaces, with second and third
// flavors joined by a literal " y ".
func ComposeName(line domain.CartLine) string {
	name := strings.TrimSpace(line.Type)
	if size := strings.TrimSpace(line.Size); size != "" {
		name += " " + size
	}
	flavors := presentFlavors(line)
	for i, f := range flavors {
		if i == 0 {
			name += " " + f
			continue
		}
		name += " y " + f
	}
	return name
}

func presentFlavors(line domain.CartLine) []string {
	var flavors []string
	for _, f := range []string{line.Flavor1, line.Flavor2, line.Flavor3} {
		if f = strings.TrimSpace(f); f != "" {
			flavors = append(flavors, f)
		}
	}
	return flavors
}
