package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"pizzeria-backend/internal/connections/rabbitmq"
	"pizzeria-backend/internal/domain"
)

// Publisher fans order events out over RabbitMQ: the "all" topic goes to the
// fanout exchange every dashboard subscriber is bound to, the "kitchen" topic
// to the orders topic exchange routed by order type.
type Publisher struct {
	mq *rabbitmq.Client
}

func NewPublisher(mq *rabbitmq.Client) *Publisher {
	return &Publisher{mq: mq}
}

func (p *Publisher) Publish(ctx context.Context, topic string, ev domain.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", ev.Type, err)
	}

	exchange := rabbitmq.NotificationsExchange
	key := ""
	if topic == domain.TopicKitchen {
		exchange = rabbitmq.OrdersExchange
		key = "kitchen." + ev.OrderType
	}
	if err := p.mq.Publish(ctx, exchange, key, ev.ID, body); err != nil {
		return fmt.Errorf("publish %s to %s: %w", ev.Type, topic, err)
	}
	return nil
}
