package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

const NotificationsExchange = "notifications_fanout"

type Publisher struct {
	conn   Connection
	logger logger.Logger
}

func NewPublisher(conn Connection, lgr logger.Logger) *Publisher {
	return &Publisher{conn: conn, logger: lgr}
}

func (p *Publisher) PublishOrderCreated(ctx context.Context, msg interfaces.OrderCreatedMessage) error {
	return p.publish(ctx, interfaces.EventOrderCreated, msg)
}

func (p *Publisher) PublishStatusChanged(ctx context.Context, msg interfaces.StatusChangedMessage) error {
	return p.publish(ctx, interfaces.EventStatusChanged, msg)
}

func (p *Publisher) publish(ctx context.Context, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}

	body, err := json.Marshal(interfaces.EventEnvelope{Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", event, err)
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	if err := ch.Publish(NotificationsExchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event, err)
	}

	p.logger.Info("publish_event", "event published", "", map[string]interface{}{
		"event":    event,
		"exchange": NotificationsExchange,
	})
	return nil
}
