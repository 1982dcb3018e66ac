package interfaces

import (
	"context"
	"encoding/json"
	"time"
)

// Broker messages published on order lifecycle events.

const (
	EventOrderCreated  = "order.created"
	EventStatusChanged = "order.status_changed"
)

// EventEnvelope wraps every published message with its event name so
// subscribers on the fanout exchange can dispatch without extra queues.
type EventEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type OrderCreatedMessage struct {
	OrderNumber     string `json:"order_number"`
	CustomerName    string `json:"customer_name"`
	SenderName      string `json:"sender_name"`
	SenderPhone     string `json:"sender_phone"`
	PaymentType     string `json:"payment_type"`
	BouquetPrice    string `json:"bouquet_price"`
	DPAmount        string `json:"dp_amount"`
	RemainingAmount string `json:"remaining_amount"`
	PickupDate      string `json:"pickup_date"`
	PickupTime      string `json:"pickup_time"`
}

type StatusChangedMessage struct {
	OrderNumber    string    `json:"order_number"`
	CustomerName   string    `json:"customer_name"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	PaymentStatus  string    `json:"payment_status"`
	ChangedBy      string    `json:"changed_by"`
	Timestamp      time.Time `json:"timestamp"`
}

type MessagePublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
	PublishStatusChanged(ctx context.Context, msg StatusChangedMessage) error
}

type MessageConsumer interface {
	ConsumeNotifications(ctx context.Context, handler NotificationHandler) error
}

type NotificationHandler func(ctx context.Context, body []byte) error
