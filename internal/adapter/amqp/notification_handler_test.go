package amqp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(action, message, requestID string, details map[string]interface{})             {}
func (nopLogger) Debug(action, message, requestID string, details map[string]interface{})            {}
func (nopLogger) Warn(action, message, requestID string, details map[string]interface{})             {}
func (nopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {}

type fakeSettings struct{}

func (fakeSettings) Get(ctx context.Context, key string) (*domain.Setting, error) {
	def := domain.DefaultSettings[key]
	return &def, nil
}

func (fakeSettings) GetAll(ctx context.Context) ([]*domain.Setting, error) { return nil, nil }
func (fakeSettings) Set(ctx context.Context, key, value, description string) (*domain.Setting, error) {
	return nil, nil
}

func envelope(t *testing.T, event string, payload any) []byte {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	body, err := json.Marshal(interfaces.EventEnvelope{Event: event, Data: data})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func TestHandleNotificationOrderCreated(t *testing.T) {
	handler := NewNotificationHandler(fakeSettings{}, nopLogger{})

	body := envelope(t, interfaces.EventOrderCreated, interfaces.OrderCreatedMessage{
		OrderNumber:     "ORD-20260310-0001",
		CustomerName:    "Maya",
		PaymentType:     "DP",
		BouquetPrice:    "150000",
		DPAmount:        "45000",
		RemainingAmount: "105000",
		PickupDate:      "2026-03-12",
		PickupTime:      "10:00",
	})

	if err := handler.HandleNotification(context.Background(), body); err != nil {
		t.Fatalf("HandleNotification() error = %v", err)
	}
}

func TestHandleNotificationStatusChanged(t *testing.T) {
	handler := NewNotificationHandler(fakeSettings{}, nopLogger{})

	body := envelope(t, interfaces.EventStatusChanged, interfaces.StatusChangedMessage{
		OrderNumber:    "ORD-20260310-0001",
		CustomerName:   "Maya",
		PreviousStatus: string(domain.StatusInProcess),
		NewStatus:      string(domain.StatusReadyForPickup),
		PaymentStatus:  string(domain.PaymentPaid),
		ChangedBy:      "florist",
		Timestamp:      time.Now(),
	})

	if err := handler.HandleNotification(context.Background(), body); err != nil {
		t.Fatalf("HandleNotification() error = %v", err)
	}
}

func TestHandleNotificationUnknownEventIsSkipped(t *testing.T) {
	handler := NewNotificationHandler(fakeSettings{}, nopLogger{})

	body := envelope(t, "order.archived", map[string]string{"order_number": "ORD-20260310-0001"})

	if err := handler.HandleNotification(context.Background(), body); err != nil {
		t.Fatalf("HandleNotification() error = %v, unknown events should be dropped", err)
	}
}

func TestHandleNotificationRejectsGarbage(t *testing.T) {
	handler := NewNotificationHandler(fakeSettings{}, nopLogger{})

	if err := handler.HandleNotification(context.Background(), []byte("{broken")); err == nil {
		t.Fatal("HandleNotification() error = nil, want parse error")
	}
}
