package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pizzeria-backend/internal/domain"
	"pizzeria-backend/internal/party"
)

// Store is the order persistence the orchestrator needs.
type Store interface {
	CreateOrder(ctx context.Context, o domain.Order) (*domain.Order, error)
	AddLineItems(ctx context.Context, orderID int, items []domain.LineItem) ([]domain.LineItem, error)
	CreateDelivery(ctx context.Context, d domain.Delivery) (*domain.Delivery, error)
	// FindOrderByID loads the order with its invoice, line items and delivery.
	FindOrderByID(ctx context.Context, id int) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int, status, notes *string) error
}

// TxRunner executes a function inside one database transaction; any error
// rolls back everything written within it.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LineResolver prices cart lines and keeps the catalog in sync.
type LineResolver interface {
	Resolve(ctx context.Context, line domain.CartLine) (domain.ResolvedLine, error)
	EnsureProduct(ctx context.Context, name string, price float64)
}

// PartyUpserter ensures customer and courier rows exist for deliveries.
type PartyUpserter interface {
	UpsertCustomer(ctx context.Context, phone, name, address string) (*domain.Customer, error)
	UpsertCourier(ctx context.Context, phone string) (*domain.Courier, error)
}

// InvoiceLedger owns the invoice aggregate.
type InvoiceLedger interface {
	Create(ctx context.Context, clientName, paymentMethod, description string) (*domain.Invoice, error)
	Finalize(ctx context.Context, id int, description string, total float64) error
	Cancel(ctx context.Context, id int) error
}

// EventPublisher broadcasts order events to subscriber channels.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, ev domain.Event) error
}

// CourierNotifier queues an out-of-band message for a courier. Delivery is
// best effort; the return value only reports whether the message was queued.
type CourierNotifier interface {
	NotifyCourier(ctx context.Context, phone, message string) bool
}

// Service orchestrates order submission: validation, line pricing, the
// transactional write of invoice/order/items/delivery, and event fan-out.
type Service struct {
	store    Store
	tx       TxRunner
	resolver LineResolver
	parties  PartyUpserter
	ledger   InvoiceLedger
	events   EventPublisher
	courier  CourierNotifier
	fee      float64
	log      *zap.Logger
}

type Deps struct {
	Store      Store
	Tx         TxRunner
	Resolver   LineResolver
	Parties    PartyUpserter
	Ledger     InvoiceLedger
	Events     EventPublisher
	Courier    CourierNotifier
	DefaultFee float64
	Logger     *zap.Logger
}

func NewService(d Deps) *Service {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    d.Store,
		tx:       d.Tx,
		resolver: d.Resolver,
		parties:  d.Parties,
		ledger:   d.Ledger,
		events:   d.Events,
		courier:  d.Courier,
		fee:      d.DefaultFee,
		log:      log,
	}
}

// Submit turns a cart into a persisted invoice, order, line items and, for
// deliveries, customer/courier/delivery rows. All writes happen in one
// transaction; events and catalog upkeep run after commit.
func (s *Service) Submit(ctx context.Context, req domain.SubmitOrderRequest) (*domain.Order, error) {
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	// Pricing is read-only, so it runs before any write: an unresolvable
	// explicit variant aborts the submission with nothing persisted.
	resolved := make([]domain.ResolvedLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		rl, err := s.resolver.Resolve(ctx, line)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rl)
	}

	description := composeDescription(resolved)
	total := 0.0
	for _, rl := range resolved {
		total += rl.UnitPrice * float64(rl.Quantity)
	}

	var created *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		inv, err := s.ledger.Create(ctx, clientName(req), req.PaymentMethod, description)
		if err != nil {
			return err
		}

		order, err := s.store.CreateOrder(ctx, domain.Order{
			InvoiceID: &inv.ID,
			Type:      req.Type,
			TableID:   tableID(req),
			Status:    domain.OrderPending,
			Notes:     req.Notes,
		})
		if err != nil {
			return err
		}

		items := make([]domain.LineItem, 0, len(resolved))
		for _, rl := range resolved {
			items = append(items, domain.LineItem{
				OrderID:   order.ID,
				Name:      rl.Name,
				Quantity:  rl.Quantity,
				UnitPrice: rl.UnitPrice,
				VariantID: rl.VariantID,
			})
		}
		if order.Items, err = s.store.AddLineItems(ctx, order.ID, items); err != nil {
			return err
		}

		if req.Type == domain.FulfillmentDelivery {
			delivery, fee, err := s.createDelivery(ctx, req, order.ID, inv.ID)
			if err != nil {
				return err
			}
			order.Delivery = delivery
			total += fee
		}

		if err := s.ledger.Finalize(ctx, inv.ID, description, total); err != nil {
			return err
		}
		inv.Description = description
		inv.Total = total
		order.Invoice = inv
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterSubmit(ctx, req, resolved, created)
	return created, nil
}

// createDelivery re-validates the delivery parties, upserts them and writes
// the delivery row.
func (s *Service) createDelivery(ctx context.Context, req domain.SubmitOrderRequest, orderID, invoiceID int) (*domain.Delivery, float64, error) {
	if req.CustomerPhone == "" {
		return nil, 0, fmt.Errorf("%w: customer_phone is required for delivery orders", domain.ErrValidation)
	}
	if req.CourierPhone == "" {
		return nil, 0, fmt.Errorf("%w: courier_phone is required for delivery orders", domain.ErrValidation)
	}

	customer, err := s.parties.UpsertCustomer(ctx, req.CustomerPhone, req.CustomerName, req.CustomerAddress)
	if err != nil {
		return nil, 0, err
	}
	if _, err := s.parties.UpsertCourier(ctx, req.CourierPhone); err != nil {
		return nil, 0, err
	}

	address := strings.TrimSpace(req.CustomerAddress)
	if address == "" {
		address = party.AddressBySlot(customer, req.AddressSlot)
	}
	fee := req.DeliveryFee
	if fee < 0 {
		fee = 0
	}
	if fee == 0 {
		fee = s.fee
	}

	delivery, err := s.store.CreateDelivery(ctx, domain.Delivery{
		OrderID:       orderID,
		InvoiceID:     invoiceID,
		CustomerPhone: req.CustomerPhone,
		CourierPhone:  req.CourierPhone,
		Address:       address,
		Fee:           fee,
		Status:        domain.DeliveryPending,
	})
	if err != nil {
		return nil, 0, err
	}
	return delivery, fee, nil
}

// afterSubmit runs the post-commit side effects. None of them can fail the
// submission; problems are logged and swallowed.
func (s *Service) afterSubmit(ctx context.Context, req domain.SubmitOrderRequest, resolved []domain.ResolvedLine, order *domain.Order) {
	for i, rl := range resolved {
		if req.Lines[i].VariantID != nil {
			// An explicit variant already names a catalog row.
			continue
		}
		s.resolver.EnsureProduct(ctx, rl.Name, rl.UnitPrice)
	}

	ev := s.orderEvent(domain.EventOrderCreated, order)
	s.publish(ctx, domain.TopicAll, ev)
	s.publish(ctx, domain.TopicKitchen, ev)

	if order.Delivery != nil {
		msg := fmt.Sprintf("Nuevo domicilio #%d: %s", order.ID, order.Delivery.Address)
		if !s.courier.NotifyCourier(ctx, order.Delivery.CourierPhone, msg) {
			s.log.Warn("courier_notify_failed",
				zap.Int("order_id", order.ID),
				zap.String("courier_phone", order.Delivery.CourierPhone))
		}
	}
}

// Update applies a direct field patch without re-running business rules and
// returns the order with relations reloaded.
func (s *Service) Update(ctx context.Context, id int, req domain.UpdateOrderRequest) (*domain.Order, error) {
	if req.Status != nil {
		switch *req.Status {
		case domain.OrderPending, domain.OrderCompleted, domain.OrderCancelled:
		default:
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *req.Status)
		}
	}
	if err := s.store.UpdateOrder(ctx, id, req.Status, req.Notes); err != nil {
		return nil, err
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.TopicAll, s.orderEvent(domain.EventOrderUpdated, order))
	return order, nil
}

// Cancel transitions the order and its invoice to cancelled together.
func (s *Service) Cancel(ctx context.Context, id int) (*domain.Order, error) {
	var cancelled *domain.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.store.FindOrderByID(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
		}
		status := domain.OrderCancelled
		if err := s.store.UpdateOrder(ctx, id, &status, nil); err != nil {
			return err
		}
		if order.InvoiceID != nil {
			if err := s.ledger.Cancel(ctx, *order.InvoiceID); err != nil {
				return err
			}
		}
		order.Status = domain.OrderCancelled
		if order.Invoice != nil {
			order.Invoice.Status = domain.InvoiceCancelled
		}
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.TopicAll, s.orderEvent(domain.EventOrderUpdated, cancelled))
	return cancelled, nil
}

// Complete marks an order done, typically from the kitchen worker.
func (s *Service) Complete(ctx context.Context, id int) (*domain.Order, error) {
	status := domain.OrderCompleted
	return s.Update(ctx, id, domain.UpdateOrderRequest{Status: &status})
}

// Handoff broadcasts a high-priority staff-attention request for an order.
func (s *Service) Handoff(ctx context.Context, id int, message string) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	ev := s.orderEvent(domain.EventHandoffRequested, order)
	ev.Message = message
	return s.events.Publish(ctx, domain.TopicAll, ev)
}

// Get loads an order with its relations.
func (s *Service) Get(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.store.FindOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
	}
	return order, nil
}

func (s *Service) orderEvent(eventType string, order *domain.Order) domain.Event {
	ev := domain.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		OrderID:    order.ID,
		OrderType:  order.Type,
		Status:     order.Status,
	}
	if order.Invoice != nil {
		ev.InvoiceID = order.Invoice.ID
		ev.Total = order.Invoice.Total
	} else if order.InvoiceID != nil {
		ev.InvoiceID = *order.InvoiceID
	}
	return ev
}

func (s *Service) publish(ctx context.Context, topic string, ev domain.Event) {
	if err := s.events.Publish(ctx, topic, ev); err != nil {
		s.log.Warn("event_publish_failed",
			zap.String("topic", topic),
			zap.String("event", ev.Type),
			zap.Int("order_id", ev.OrderID),
			zap.Error(err))
	}
}

func validateSubmission(req domain.SubmitOrderRequest) error {
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: order has no lines", domain.ErrValidation)
	}
	switch req.Type {
	case domain.FulfillmentTable:
		if strings.TrimSpace(req.TableID) == "" {
			return fmt.Errorf("%w: table_id is required for table orders", domain.ErrValidation)
		}
	case domain.FulfillmentDelivery:
		if strings.TrimSpace(req.CustomerName) == "" {
			return fmt.Errorf("%w: customer_name is required for delivery orders", domain.ErrValidation)
		}
		if strings.TrimSpace(req.CustomerAddress) == "" && req.AddressSlot == 0 {
			return fmt.Errorf("%w: an address or address_slot is required for delivery orders", domain.ErrValidation)
		}
	case domain.FulfillmentTakeout:
		if strings.TrimSpace(req.CustomerName) == "" {
			return fmt.Errorf("%w: customer_name is required for takeout orders", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown order type %q", domain.ErrValidation, req.Type)
	}
	return nil
}

// composeDescription renders the invoice summary: one "{quantity} {name}"
// fragment per line, joined with ", ".
func composeDescription(lines []domain.ResolvedLine) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, fmt.Sprintf("%d %s", l.Quantity, l.Name))
	}
	return strings.Join(parts, ", ")
}

func clientName(req domain.SubmitOrderRequest) string {
	if req.Type == domain.FulfillmentTable {
		return req.TableID
	}
	return req.CustomerName
}

func tableID(req domain.SubmitOrderRequest) *string {
	if req.Type != domain.FulfillmentTable {
		return nil
	}
	id := req.TableID
	return &id
}
