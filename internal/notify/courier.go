package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pizzeria-backend/internal/connections/rabbitmq"
	"pizzeria-backend/internal/domain"
)

const courierPublishTTL = 3 * time.Second

// CourierNotifier queues out-of-band messages for couriers, keyed by phone.
// Failures are logged and reported via the return value, never raised.
type CourierNotifier struct {
	mq  *rabbitmq.Client
	log *zap.Logger
}

func NewCourierNotifier(mq *rabbitmq.Client, log *zap.Logger) *CourierNotifier {
	return &CourierNotifier{mq: mq, log: log}
}

func (n *CourierNotifier) NotifyCourier(ctx context.Context, phone, message string) bool {
	body, err := json.Marshal(domain.CourierMessage{Phone: phone, Message: message})
	if err != nil {
		n.log.Warn("courier_message_marshal_failed", zap.Error(err))
		return false
	}

	// Detached from the request context so caller cancellation does not
	// drop the message mid-publish.
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), courierPublishTTL)
	defer cancel()

	if err := n.mq.Publish(pctx, "", rabbitmq.CourierQueue, uuid.NewString(), body); err != nil {
		n.log.Warn("courier_message_publish_failed", zap.String("phone", phone), zap.Error(err))
		return false
	}
	return true
}
