package notify

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"pizzeria-backend/internal/connections/rabbitmq"
	"pizzeria-backend/internal/domain"
)

// Subscriber drains the notification queues: broadcast events are echoed for
// the dashboard, courier messages are handed to the external contact channel.
type Subscriber struct {
	mq  *rabbitmq.Client
	log *zap.Logger
}

func NewSubscriber(mq *rabbitmq.Client, log *zap.Logger) *Subscriber {
	return &Subscriber{mq: mq, log: log}
}

// Run consumes until the context is cancelled.
func (s *Subscriber) Run(ctx context.Context) error {
	events, err := s.mq.Consume(rabbitmq.NotificationsQueue, "notification-subscriber", 10)
	if err != nil {
		return err
	}
	courier, err := s.mq.Consume(rabbitmq.CourierQueue, "courier-notifier", 1)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-events:
			if !ok {
				return nil
			}
			s.handleEvent(d)
		case d, ok := <-courier:
			if !ok {
				return nil
			}
			s.handleCourierMessage(d)
		}
	}
}

func (s *Subscriber) handleEvent(d amqp.Delivery) {
	var ev domain.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		s.log.Warn("event_decode_failed", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	s.log.Info("event_received",
		zap.String("event", ev.Type),
		zap.Int("order_id", ev.OrderID),
		zap.String("status", ev.Status))
	_ = d.Ack(false)
}

// handleCourierMessage stands in for the external chat-bot delivery. A real
// send failure is logged and the message dropped; it never propagates.
func (s *Subscriber) handleCourierMessage(d amqp.Delivery) {
	var msg domain.CourierMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		s.log.Warn("courier_message_decode_failed", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	s.log.Info("courier_message_delivered",
		zap.String("phone", msg.Phone),
		zap.String("message", msg.Message))
	_ = d.Ack(false)
}
