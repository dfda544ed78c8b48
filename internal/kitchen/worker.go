package kitchen

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pizzeria-backend/internal/connections/rabbitmq"
	"pizzeria-backend/internal/domain"
	"pizzeria-backend/internal/orders"
)

// Worker consumes kitchen tickets and marks orders completed once prepared.
type Worker struct {
	Name     string
	Prefetch int
	PrepTime time.Duration

	mq     *rabbitmq.Client
	orders *orders.Service
	log    *zap.Logger
}

func NewWorker(name string, prefetch int, prepTime time.Duration, mq *rabbitmq.Client, svc *orders.Service, log *zap.Logger) *Worker {
	if prefetch < 1 {
		prefetch = 1
	}
	return &Worker{
		Name:     name,
		Prefetch: prefetch,
		PrepTime: prepTime,
		mq:       mq,
		orders:   svc,
		log:      log,
	}
}

// Run consumes kitchen tickets until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	deliveries, err := w.mq.Consume(rabbitmq.KitchenQueue, w.Name, w.Prefetch)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var ev domain.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		w.log.Warn("ticket_decode_failed", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	if ev.Type != domain.EventOrderCreated {
		_ = d.Ack(false)
		return
	}

	w.log.Info("ticket_received",
		zap.Int("order_id", ev.OrderID),
		zap.String("order_type", ev.OrderType))

	if w.PrepTime > 0 {
		select {
		case <-time.After(w.PrepTime):
		case <-ctx.Done():
			_ = d.Nack(false, true)
			return
		}
	}

	if _, err := w.orders.Complete(ctx, ev.OrderID); err != nil {
		w.log.Error("order_complete_failed", zap.Int("order_id", ev.OrderID), zap.Error(err))
		// Requeue once the order row is reachable again.
		_ = d.Nack(false, true)
		return
	}
	w.log.Info("order_completed", zap.Int("order_id", ev.OrderID))
	_ = d.Ack(false)
}
