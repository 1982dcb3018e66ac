package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

// NotificationHandler renders customer-facing messages for order events.
// The notification-subscriber mode prints them to stdout; a delivery channel
// (WhatsApp, email) would plug in here.
type NotificationHandler struct {
	settings interfaces.SettingsService
	logger   logger.Logger
}

func NewNotificationHandler(settings interfaces.SettingsService, lgr logger.Logger) *NotificationHandler {
	return &NotificationHandler{settings: settings, logger: lgr}
}

func (h *NotificationHandler) HandleNotification(ctx context.Context, body []byte) error {
	var envelope interfaces.EventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.logger.Error("message_parse_failed", "failed to parse notification envelope", "", nil, err)
		return err
	}

	switch envelope.Event {
	case interfaces.EventOrderCreated:
		var msg interfaces.OrderCreatedMessage
		if err := json.Unmarshal(envelope.Data, &msg); err != nil {
			h.logger.Error("message_parse_failed", "failed to parse order created message", "", nil, err)
			return err
		}
		return h.handleOrderCreated(ctx, msg)
	case interfaces.EventStatusChanged:
		var msg interfaces.StatusChangedMessage
		if err := json.Unmarshal(envelope.Data, &msg); err != nil {
			h.logger.Error("message_parse_failed", "failed to parse status changed message", "", nil, err)
			return err
		}
		return h.handleStatusChanged(ctx, msg)
	default:
		h.logger.Warn("notification_skipped", "unknown event type", "", map[string]interface{}{
			"event": envelope.Event,
		})
		return nil
	}
}

func (h *NotificationHandler) handleOrderCreated(ctx context.Context, msg interfaces.OrderCreatedMessage) error {
	h.logger.Debug("notification_received", fmt.Sprintf("received order created for %s", msg.OrderNumber),
		msg.OrderNumber, map[string]interface{}{
			"order_number": msg.OrderNumber,
			"payment_type": msg.PaymentType,
		})

	store := h.settingValue(ctx, domain.SettingStoreName)
	bank := h.settingValue(ctx, domain.SettingBankName)
	account := h.settingValue(ctx, domain.SettingBankAccountNumber)
	holder := h.settingValue(ctx, domain.SettingBankAccountName)
	phone := h.settingValue(ctx, domain.SettingContactPhone)

	amount := msg.DPAmount
	label := "down payment"
	if msg.PaymentType == string(domain.PaymentTypeFull) {
		amount = msg.BouquetPrice
		label = "full payment"
	}

	fmt.Printf("[%s] Order %s received for %s.\n", store, msg.OrderNumber, msg.CustomerName)
	fmt.Printf("  Please transfer the %s of %s to %s %s (%s).\n", label, amount, bank, account, holder)
	if msg.PaymentType == string(domain.PaymentTypeDP) {
		fmt.Printf("  Remaining %s is due at pickup on %s %s.\n", msg.RemainingAmount, msg.PickupDate, msg.PickupTime)
	} else {
		fmt.Printf("  Pickup is scheduled for %s %s.\n", msg.PickupDate, msg.PickupTime)
	}
	fmt.Printf("  Questions? Contact us at %s.\n", phone)

	return nil
}

func (h *NotificationHandler) handleStatusChanged(ctx context.Context, msg interfaces.StatusChangedMessage) error {
	h.logger.Debug("notification_received", fmt.Sprintf("received status update for %s", msg.OrderNumber),
		msg.OrderNumber, map[string]interface{}{
			"order_number": msg.OrderNumber,
			"new_status":   msg.NewStatus,
		})

	store := h.settingValue(ctx, domain.SettingStoreName)

	fmt.Printf("[%s] Order %s for %s: status changed from '%s' to '%s' by %s.\n",
		store, msg.OrderNumber, msg.CustomerName, msg.PreviousStatus, msg.NewStatus, msg.ChangedBy)
	if msg.NewStatus == string(domain.StatusReadyForPickup) {
		phone := h.settingValue(ctx, domain.SettingContactPhone)
		fmt.Printf("  Your bouquet is ready for pickup. Contact us at %s if anything changes.\n", phone)
	}

	return nil
}

// settingValue falls back to the built-in default when the store is
// unreachable so a database outage never drops a notification.
func (h *NotificationHandler) settingValue(ctx context.Context, key string) string {
	setting, err := h.settings.Get(ctx, key)
	if err != nil {
		h.logger.Warn("setting_lookup_failed", "using default setting value", "", map[string]interface{}{
			"key": key,
		})
		return domain.DefaultSettings[key].Value
	}
	return setting.Value
}
