package party

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzeria-backend/internal/domain"
)

type fakeStore struct {
	customers map[string]*domain.Customer
	couriers  map[string]*domain.Courier

	customerCreates int
	courierCreates  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers: map[string]*domain.Customer{},
		couriers:  map[string]*domain.Courier{},
	}
}

func (f *fakeStore) FindCustomerByPhone(_ context.Context, phone string) (*domain.Customer, error) {
	if c, ok := f.customers[phone]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateCustomer(_ context.Context, c domain.Customer) error {
	f.customerCreates++
	cp := c
	f.customers[c.Phone] = &cp
	return nil
}

func (f *fakeStore) UpdateCustomerAddresses(_ context.Context, c domain.Customer) error {
	cp := c
	f.customers[c.Phone] = &cp
	return nil
}

func (f *fakeStore) FindCourierByPhone(_ context.Context, phone string) (*domain.Courier, error) {
	if c, ok := f.couriers[phone]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateCourier(_ context.Context, c domain.Courier) error {
	f.courierCreates++
	cp := c
	f.couriers[c.Phone] = &cp
	return nil
}

func TestUpsertCustomerCreates(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)

	c, err := s.UpsertCustomer(context.Background(), "3001234567", "Laura", "Calle 10 #4-20")
	require.NoError(t, err)
	assert.Equal(t, "Laura", c.Name)
	assert.Equal(t, "Calle 10 #4-20", c.Address)
	assert.Equal(t, 1, store.customerCreates)
}

func TestUpsertCustomerFillsAlternateSlotsInOrder(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "300", "Laura", "Calle 10")
	require.NoError(t, err)
	_, err = s.UpsertCustomer(ctx, "300", "", "Carrera 7")
	require.NoError(t, err)
	c, err := s.UpsertCustomer(ctx, "300", "", "Avenida 30")
	require.NoError(t, err)

	assert.Equal(t, "Calle 10", c.Address)
	assert.Equal(t, "Carrera 7", c.Address2)
	assert.Equal(t, "Avenida 30", c.Address3)
	assert.Equal(t, 1, store.customerCreates)
}

func TestUpsertCustomerDropsFourthAddress(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)
	ctx := context.Background()

	for _, addr := range []string{"Calle 10", "Carrera 7", "Avenida 30"} {
		_, err := s.UpsertCustomer(ctx, "300", "Laura", addr)
		require.NoError(t, err)
	}
	c, err := s.UpsertCustomer(ctx, "300", "", "Transversal 5")
	require.NoError(t, err)

	assert.Equal(t, "Calle 10", c.Address)
	assert.Equal(t, "Carrera 7", c.Address2)
	assert.Equal(t, "Avenida 30", c.Address3)
}

func TestUpsertCustomerIgnoresDuplicateAddress(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "300", "Laura", "Calle 10")
	require.NoError(t, err)
	c, err := s.UpsertCustomer(ctx, "300", "", "  calle 10 ")
	require.NoError(t, err)

	assert.Equal(t, "Calle 10", c.Address)
	assert.Empty(t, c.Address2)
	assert.Empty(t, c.Address3)
}

func TestUpsertCustomerKeepsOriginalName(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "300", "Laura", "Calle 10")
	require.NoError(t, err)
	c, err := s.UpsertCustomer(ctx, "300", "Otro Nombre", "Carrera 7")
	require.NoError(t, err)

	assert.Equal(t, "Laura", c.Name)
}

func TestUpsertCustomerRequiresPhone(t *testing.T) {
	s := NewService(newFakeStore())
	_, err := s.UpsertCustomer(context.Background(), "", "Laura", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpsertCourierIdempotent(t *testing.T) {
	store := newFakeStore()
	s := NewService(store)
	ctx := context.Background()

	_, err := s.UpsertCourier(ctx, "311")
	require.NoError(t, err)
	_, err = s.UpsertCourier(ctx, "311")
	require.NoError(t, err)

	assert.Equal(t, 1, store.courierCreates)
}

func TestAddressBySlot(t *testing.T) {
	c := &domain.Customer{Address: "a1", Address2: "a2", Address3: "a3"}
	assert.Equal(t, "a1", AddressBySlot(c, 1))
	assert.Equal(t, "a2", AddressBySlot(c, 2))
	assert.Equal(t, "a3", AddressBySlot(c, 3))
	assert.Equal(t, "a1", AddressBySlot(c, 0))
}
