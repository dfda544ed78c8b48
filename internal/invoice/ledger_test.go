package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-backend/internal/domain"
)

type fakeStore struct {
	invoices map[int]*domain.Invoice
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{invoices: map[int]*domain.Invoice{}, nextID: 1}
}

func (f *fakeStore) CreateInvoice(_ context.Context, inv domain.Invoice) (*domain.Invoice, error) {
	inv.ID = f.nextID
	inv.CreatedAt = time.Now().UTC()
	f.nextID++
	cp := inv
	f.invoices[inv.ID] = &cp
	return &inv, nil
}

func (f *fakeStore) UpdateInvoiceTotals(_ context.Context, id int, description string, total float64) error {
	inv := f.invoices[id]
	inv.Description = description
	inv.Total = total
	return nil
}

func (f *fakeStore) UpdateInvoiceStatus(_ context.Context, id int, status string) error {
	f.invoices[id].Status = status
	return nil
}

func (f *fakeStore) FindInvoiceByID(_ context.Context, id int) (*domain.Invoice, error) {
	if inv, ok := f.invoices[id]; ok {
		cp := *inv
		return &cp, nil
	}
	return nil, nil
}

func TestCreateOpensPendingInvoice(t *testing.T) {
	store := newFakeStore()
	l := NewLedger(store)

	inv, err := l.Create(context.Background(), "Laura", "efectivo", "1 pizza mediana mexicana")
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePending, inv.Status)
	assert.Equal(t, "Laura", inv.ClientName)
	assert.Equal(t, 0.0, inv.Total)
}

func TestFinalizeStoresWhatItIsTold(t *testing.T) {
	store := newFakeStore()
	l := NewLedger(store)
	ctx := context.Background()

	inv, err := l.Create(ctx, "Laura", "efectivo", "")
	require.NoError(t, err)

	// The ledger never derives the total itself; it stores the caller's sum.
	require.NoError(t, l.Finalize(ctx, inv.ID, "1 pizza mediana mexicana", 31000))
	got, err := l.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 31000.0, got.Total)
	assert.Equal(t, "1 pizza mediana mexicana", got.Description)
}

func TestCancelLeavesTotalsUntouched(t *testing.T) {
	store := newFakeStore()
	l := NewLedger(store)
	ctx := context.Background()

	inv, err := l.Create(ctx, "Laura", "efectivo", "desc")
	require.NoError(t, err)
	require.NoError(t, l.Finalize(ctx, inv.ID, "desc", 31000))
	require.NoError(t, l.Cancel(ctx, inv.ID))

	got, err := l.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceCancelled, got.Status)
	assert.Equal(t, 31000.0, got.Total)
	assert.Equal(t, "desc", got.Description)
}

func TestGetMissingInvoice(t *testing.T) {
	l := NewLedger(newFakeStore())
	_, err := l.Get(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
