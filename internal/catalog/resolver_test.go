package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pizzeria-backend/internal/config"
	"pizzeria-backend/internal/domain"
)

type fakeStore struct {
	variantsByID map[int]*domain.Variant
	variants     map[string]*domain.Variant // key: type|size
	products     map[string]*domain.Product // key: lowercase name
	created      []string
	renamed      []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		variantsByID: map[int]*domain.Variant{},
		variants:     map[string]*domain.Variant{},
		products:     map[string]*domain.Product{},
	}
}

func (f *fakeStore) FindVariantByID(_ context.Context, id int) (*domain.Variant, error) {
	return f.variantsByID[id], nil
}

func (f *fakeStore) FindVariant(_ context.Context, productType, size string) (*domain.Variant, error) {
	return f.variants[productType+"|"+size], nil
}

func (f *fakeStore) FindProductByName(_ context.Context, name string) (*domain.Product, error) {
	return f.products[normalizeFlavor(name)], nil
}

func (f *fakeStore) CreateProduct(_ context.Context, name string, price float64) error {
	f.created = append(f.created, name)
	f.products[normalizeFlavor(name)] = &domain.Product{ID: len(f.products) + 1, Name: name, Price: price}
	return nil
}

func (f *fakeStore) RenameProduct(_ context.Context, id int, name string) error {
	f.renamed = append(f.renamed, name)
	return nil
}

func testConfig() config.Catalog {
	return config.Catalog{
		SpecialSurcharge:     map[string]float64{"pequeña": 2000, "mediana": 3000, "grande": 4000},
		ThreeFlavorSurcharge: 3000,
	}
}

func newTestResolver(store *fakeStore) *Resolver {
	return NewResolver(store, testConfig(), zap.NewNop())
}

func TestResolvePizzaPricing(t *testing.T) {
	store := newFakeStore()
	store.variants["pizza|mediana"] = &domain.Variant{ID: 10, Size: "mediana", Price: 28000}
	store.variants["pizza|grande"] = &domain.Variant{ID: 11, Size: "grande", Price: 38000}
	r := newTestResolver(store)

	tests := []struct {
		name string
		line domain.CartLine
		want float64
	}{
		{
			name: "traditional flavor pays base price",
			line: domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "mexicana", Quantity: 1},
			want: 28000,
		},
		{
			name: "two traditional flavors pay base price",
			line: domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "mexicana", Flavor2: "vegetales", Quantity: 1},
			want: 28000,
		},
		{
			name: "special flavor adds the size surcharge",
			line: domain.CartLine{Type: "pizza", Size: "grande", Flavor1: "paisa", Quantity: 1},
			want: 38000 + 4000,
		},
		{
			name: "surcharge applies once with two special flavors",
			line: domain.CartLine{Type: "pizza", Size: "grande", Flavor1: "paisa", Flavor2: "ranchera", Quantity: 1},
			want: 38000 + 4000,
		},
		{
			name: "three flavors add the flat surcharge",
			line: domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "mexicana", Flavor2: "vegetales", Flavor3: "hawaiana", Quantity: 1},
			want: 28000 + 3000,
		},
		{
			name: "three flavors with one special stack both surcharges",
			line: domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "paisa", Flavor2: "vegetales", Flavor3: "hawaiana", Quantity: 1},
			want: 28000 + 3000 + 3000,
		},
		{
			name: "unknown flavor is free text without surcharge",
			line: domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "inventada", Quantity: 1},
			want: 28000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.UnitPrice)
		})
	}
}

func TestResolveExplicitVariant(t *testing.T) {
	store := newFakeStore()
	store.variantsByID[7] = &domain.Variant{ID: 7, Size: "grande", Price: 38000}
	r := newTestResolver(store)

	id := 7
	got, err := r.Resolve(context.Background(), domain.CartLine{
		Type: "pizza", Size: "grande", Flavor1: "paisa", Quantity: 2, VariantID: &id,
	})
	require.NoError(t, err)
	assert.Equal(t, 38000+4000.0, got.UnitPrice)
	assert.Equal(t, 2, got.Quantity)
	assert.Equal(t, &id, got.VariantID)
}

func TestResolveExplicitVariantNotFound(t *testing.T) {
	r := newTestResolver(newFakeStore())

	id := 99
	_, err := r.Resolve(context.Background(), domain.CartLine{Type: "pizza", VariantID: &id, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveUnseededProductDefaultsToZero(t *testing.T) {
	r := newTestResolver(newFakeStore())

	got, err := r.Resolve(context.Background(), domain.CartLine{Type: "lasaña", Size: "personal", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.UnitPrice)
	assert.Equal(t, "lasaña personal", got.Name)
}

func TestResolveQuantityClampedToOne(t *testing.T) {
	r := newTestResolver(newFakeStore())

	got, err := r.Resolve(context.Background(), domain.CartLine{Type: "gaseosa"})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestComposeName(t *testing.T) {
	tests := []struct {
		name string
		line domain.CartLine
		want string
	}{
		{
			name: "pizza with one flavor",
			line: domain.CartLine{Type: "pizza", Size: "grande", Flavor1: "paisa"},
			want: "pizza grande paisa",
		},
		{
			name: "pizza with three flavors",
			line: domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "mexicana", Flavor2: "vegetales", Flavor3: "hawaiana"},
			want: "pizza mediana mexicana y vegetales y hawaiana",
		},
		{
			name: "non-pizza with modifiers",
			line: domain.CartLine{Type: "lasaña", Size: "familiar", Flavor1: "pollo", Flavor2: "carne"},
			want: "lasaña familiar pollo y carne",
		},
		{
			name: "bare type",
			line: domain.CartLine{Type: "gaseosa"},
			want: "gaseosa",
		},
		{
			name: "flavor gap skips empty slots",
			line: domain.CartLine{Type: "pizza", Size: "grande", Flavor1: "paisa", Flavor3: "pollo"},
			want: "pizza grande paisa y pollo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeName(tt.line))
		})
	}
}

func TestEnsureProduct(t *testing.T) {
	t.Run("creates missing product", func(t *testing.T) {
		store := newFakeStore()
		r := newTestResolver(store)
		r.EnsureProduct(context.Background(), "pizza grande paisa", 42000)
		assert.Equal(t, []string{"pizza grande paisa"}, store.created)
	})

	t.Run("renames product with different casing", func(t *testing.T) {
		store := newFakeStore()
		store.products["pizza grande paisa"] = &domain.Product{ID: 3, Name: "Pizza Grande Paisa"}
		r := newTestResolver(store)
		r.EnsureProduct(context.Background(), "pizza grande paisa", 42000)
		assert.Empty(t, store.created)
		assert.Equal(t, []string{"pizza grande paisa"}, store.renamed)
	})

	t.Run("no-op when name matches exactly", func(t *testing.T) {
		store := newFakeStore()
		store.products["pizza grande paisa"] = &domain.Product{ID: 3, Name: "pizza grande paisa"}
		r := newTestResolver(store)
		r.EnsureProduct(context.Background(), "pizza grande paisa", 42000)
		assert.Empty(t, store.created)
		assert.Empty(t, store.renamed)
	})
}

func TestExtraSpecialFlavorsFromConfig(t *testing.T) {
	store := newFakeStore()
	store.variants["pizza|mediana"] = &domain.Variant{ID: 10, Size: "mediana", Price: 28000}
	cfg := testConfig()
	cfg.ExtraSpecialFlavors = []string{"trufada"}
	r := NewResolver(store, cfg, zap.NewNop())

	got, err := r.Resolve(context.Background(), domain.CartLine{Type: "pizza", Size: "mediana", Flavor1: "trufada", Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, 28000+3000.0, got.UnitPrice)
}
