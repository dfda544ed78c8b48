package party

import (
	"context"
	"fmt"
	"strings"

	"pizzeria-backend/internal/domain"
)

// Store is the phone-keyed customer/courier persistence the service needs.
type Store interface {
	FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, c domain.Customer) error
	UpdateCustomerAddresses(ctx context.Context, c domain.Customer) error
	FindCourierByPhone(ctx context.Context, phone string) (*domain.Courier, error)
	CreateCourier(ctx context.Context, c domain.Courier) error
}

// Service guarantees customer and courier rows exist before a delivery is
// persisted. All operations are idempotent.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// UpsertCustomer creates the customer on first sight. On later calls a new
// address goes into the first empty alternate slot; populated slots are never
// overwritten, a duplicate address is not re-added, and when both alternates
// are full the new address is silently dropped. The name is only set at
// creation time.
func (s *Service) UpsertCustomer(ctx context.Context, phone, name, address string) (*domain.Customer, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: customer phone is required", domain.ErrValidation)
	}
	address = strings.TrimSpace(address)

	existing, err := s.store.FindCustomerByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("find customer %s: %w", phone, err)
	}
	if existing == nil {
		c := domain.Customer{Phone: phone, Name: strings.TrimSpace(name), Address: address}
		if err := s.store.CreateCustomer(ctx, c); err != nil {
			return nil, fmt.Errorf("create customer %s: %w", phone, err)
		}
		return &c, nil
	}

	if address == "" || hasAddress(existing, address) {
		return existing, nil
	}
	switch {
	case strings.TrimSpace(existing.Address) == "":
		existing.Address = address
	case strings.TrimSpace(existing.Address2) == "":
		existing.Address2 = address
	case strings.TrimSpace(existing.Address3) == "":
		existing.Address3 = address
	default:
		// Both alternate slots are taken; drop the new address.
		return existing, nil
	}
	if err := s.store.UpdateCustomerAddresses(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update customer %s: %w", phone, err)
	}
	return existing, nil
}

// UpsertCourier creates a bare courier row if none exists for the phone.
func (s *Service) UpsertCourier(ctx context.Context, phone string) (*domain.Courier, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: courier phone is required", domain.ErrValidation)
	}
	existing, err := s.store.FindCourierByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("find courier %s: %w", phone, err)
	}
	if existing != nil {
		return existing, nil
	}
	c := domain.Courier{Phone: phone}
	if err := s.store.CreateCourier(ctx, c); err != nil {
		return nil, fmt.Errorf("create courier %s: %w", phone, err)
	}
	return &c, nil
}

func hasAddress(c *domain.Customer, address string) bool {
	for _, known := range []string{c.Address, c.Address2, c.Address3} {
		if strings.EqualFold(strings.TrimSpace(known), address) {
			return true
		}
	}
	return false
}

// AddressBySlot returns the stored address for a 1-based slot number, falling
// back to the primary address for out-of-range slots.
func AddressBySlot(c *domain.Customer, slot int) string {
	switch slot {
	case 2:
		return c.Address2
	case 3:
		return c.Address3
	default:
		return c.Address
	}
}
