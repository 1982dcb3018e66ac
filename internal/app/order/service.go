package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

const (
	defaultDPPercent = 30
	createAttempts   = 3
	defaultPageLimit = 10
	maxPageLimit     = 100
	pickupDateLayout = "2006-01-02"
)

type Service struct {
	orders    interfaces.OrderRepository
	bouquets  interfaces.BouquetRepository
	settings  interfaces.SettingsService
	publisher interfaces.MessagePublisher
	logger    logger.Logger
	now       func() time.Time
}

func NewService(
	orders interfaces.OrderRepository,
	bouquets interfaces.BouquetRepository,
	settings interfaces.SettingsService,
	publisher interfaces.MessagePublisher,
	lgr logger.Logger,
) *Service {
	return &Service{
		orders:    orders,
		bouquets:  bouquets,
		settings:  settings,
		publisher: publisher,
		logger:    lgr,
		now:       time.Now,
	}
}

func (s *Service) CreateOrder(ctx context.Context, cmd interfaces.CreateOrderCommand) (*domain.Order, error) {
	if err := validateRequiredFields(cmd); err != nil {
		return nil, err
	}

	paymentType := domain.PaymentType(cmd.PaymentType)
	if !paymentType.Valid() {
		return nil, domain.NewValidationError("payment_type", "must be DP or FULL")
	}

	pickupDate, err := time.Parse(pickupDateLayout, cmd.PickupDate)
	if err != nil {
		return nil, domain.NewValidationError("pickup_date", "must be in YYYY-MM-DD format")
	}
	if err := domain.ValidatePickup(pickupDate, cmd.PickupTime, s.now()); err != nil {
		return nil, err
	}

	images, err := buildImages(cmd.Images)
	if err != nil {
		return nil, err
	}

	bouquet, err := s.bouquets.FindByID(ctx, cmd.BouquetID)
	if err != nil {
		return nil, err
	}
	if !bouquet.IsActive {
		return nil, domain.NewBusinessRuleError("bouquet is no longer available")
	}

	dp, remaining := domain.ComputePaymentSplit(bouquet.Price, paymentType, s.dpPercent(ctx))

	now := s.now()
	order := &domain.Order{
		BouquetID:       bouquet.ID,
		CustomerName:    cmd.CustomerName,
		SenderName:      cmd.SenderName,
		SenderPhone:     cmd.SenderPhone,
		PaymentMethod:   cmd.PaymentMethod,
		BouquetPrice:    bouquet.Price,
		PaymentType:     paymentType,
		DPAmount:        dp,
		RemainingAmount: remaining,
		TotalPaid:       decimal.Zero,
		PickupDate:      pickupDate,
		PickupTime:      cmd.PickupTime,
		Notes:           cmd.Notes,
		OrderStatus:     domain.StatusWaitingConfirmation,
		PaymentStatus:   domain.PaymentUnpaid,
		Images:          images,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Concurrent same-day creations can compute the same daily sequence.
	// The unique constraint catches the collision and we regenerate.
	for attempt := 1; ; attempt++ {
		number, err := s.orders.GenerateOrderNumber(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate order number: %w", err)
		}
		order.OrderNumber = number

		err = s.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateOrderNumber) && attempt < createAttempts {
			s.logger.Warn("order_number_conflict", "Order number collision, retrying", "", map[string]interface{}{
				"order_number": number,
				"attempt":      attempt,
			})
			continue
		}
		s.logger.Error("order_create_failed", "Failed to create order", "", nil, err)
		return nil, err
	}

	s.logger.Info("order_created", "Order created", "", map[string]interface{}{
		"order_number": order.OrderNumber,
		"payment_type": string(order.PaymentType),
	})

	msg := interfaces.OrderCreatedMessage{
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		SenderName:      order.SenderName,
		SenderPhone:     order.SenderPhone,
		PaymentType:     string(order.PaymentType),
		BouquetPrice:    order.BouquetPrice.String(),
		DPAmount:        order.DPAmount.String(),
		RemainingAmount: order.RemainingAmount.String(),
		PickupDate:      order.PickupDate.Format(pickupDateLayout),
		PickupTime:      order.PickupTime,
	}
	if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
		// The order is committed; a lost notification is not worth failing it.
		s.logger.Warn("publish_failed", "Failed to publish order created event", "", map[string]interface{}{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
	}

	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.orders.GetLogs(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Logs = logs
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, q interfaces.ListOrdersQuery) ([]*domain.Order, *interfaces.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.Status != "" && !domain.OrderStatus(q.Status).Valid() {
		return nil, nil, domain.NewValidationError("status", "unknown order status")
	}
	if q.PaymentStatus != "" && !domain.PaymentStatus(q.PaymentStatus).Valid() {
		return nil, nil, domain.NewValidationError("payment_status", "unknown payment status")
	}

	orders, total, err := s.orders.List(ctx, q)
	if err != nil {
		return nil, nil, err
	}

	pagination := &interfaces.Pagination{
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}
	return orders, pagination, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int, cmd interfaces.UpdateOrderStatusCommand) (*domain.Order, error) {
	if cmd.Status == nil && cmd.PaymentStatus == nil {
		return nil, domain.NewValidationError("status", "at least one of status or payment_status is required")
	}

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var logs []*domain.OrderLog
	now := s.now()

	if cmd.Status != nil {
		newStatus := domain.OrderStatus(*cmd.Status)
		if !newStatus.Valid() {
			return nil, domain.NewValidationError("status", "unknown order status")
		}
		if newStatus != order.OrderStatus {
			if !order.CanTransitionTo(newStatus) {
				return nil, domain.NewBusinessRuleError(fmt.Sprintf(
					"cannot transition order from %s to %s", order.OrderStatus, newStatus))
			}
			logs = append(logs, &domain.OrderLog{
				OrderID:        order.ID,
				AdminID:        cmd.AdminID,
				PreviousStatus: string(order.OrderStatus),
				NewStatus:      string(newStatus),
				Notes:          cmd.Notes,
				CreatedAt:      now,
			})
			order.OrderStatus = newStatus
		}
	}

	if cmd.PaymentStatus != nil {
		newPayment := domain.PaymentStatus(*cmd.PaymentStatus)
		if !newPayment.Valid() {
			return nil, domain.NewValidationError("payment_status", "unknown payment status")
		}
		if newPayment != order.PaymentStatus {
			logs = append(logs, &domain.OrderLog{
				OrderID:        order.ID,
				AdminID:        cmd.AdminID,
				PreviousStatus: string(order.PaymentStatus),
				NewStatus:      string(newPayment),
				Notes:          cmd.Notes,
				CreatedAt:      now,
			})
			if newPayment == domain.PaymentPaid {
				order.MarkPaid()
			} else {
				order.PaymentStatus = newPayment
			}
		}
	}

	if len(logs) == 0 {
		// Nothing actually changed; no audit row, no update.
		return s.GetOrder(ctx, order.ID)
	}

	order.UpdatedAt = now
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	for _, log := range logs {
		if err := s.orders.AppendLog(ctx, log); err != nil {
			return nil, err
		}
	}

	s.logger.Info("order_status_updated", "Order status updated", "", map[string]interface{}{
		"order_number":   order.OrderNumber,
		"order_status":   string(order.OrderStatus),
		"payment_status": string(order.PaymentStatus),
	})

	msg := interfaces.StatusChangedMessage{
		OrderNumber:    order.OrderNumber,
		CustomerName:   order.CustomerName,
		PreviousStatus: logs[0].PreviousStatus,
		NewStatus:      logs[0].NewStatus,
		PaymentStatus:  string(order.PaymentStatus),
		ChangedBy:      cmd.ChangedBy,
		Timestamp:      now,
	}
	if err := s.publisher.PublishStatusChanged(ctx, msg); err != nil {
		s.logger.Warn("publish_failed", "Failed to publish status changed event", "", map[string]interface{}{
			"order_number": order.OrderNumber,
			"error":        err.Error(),
		})
	}

	return s.GetOrder(ctx, order.ID)
}

func (s *Service) dpPercent(ctx context.Context) decimal.Decimal {
	setting, err := s.settings.Get(ctx, domain.SettingDPPercentage)
	if err != nil {
		return decimal.NewFromInt(defaultDPPercent)
	}
	percent, err := decimal.NewFromString(setting.Value)
	if err != nil || percent.IsNegative() {
		return decimal.NewFromInt(defaultDPPercent)
	}
	return percent
}

func validateRequiredFields(cmd interfaces.CreateOrderCommand) error {
	checks := []struct {
		field   string
		missing bool
	}{
		{"customer_name", cmd.CustomerName == ""},
		{"bouquet_id", cmd.BouquetID == 0},
		{"pickup_date", cmd.PickupDate == ""},
		{"pickup_time", cmd.PickupTime == ""},
		{"payment_type", cmd.PaymentType == ""},
		{"sender_name", cmd.SenderName == ""},
		{"payment_method", cmd.PaymentMethod == ""},
	}
	for _, c := range checks {
		if c.missing {
			return domain.NewValidationError(c.field, "is required")
		}
	}
	return nil
}

func buildImages(cmds []interfaces.CreateOrderImageCommand) ([]domain.OrderImage, error) {
	images := make([]domain.OrderImage, 0, len(cmds))
	for _, c := range cmds {
		imageType := domain.ImageType(c.ImageType)
		if !imageType.Valid() {
			return nil, domain.NewValidationError("images", "unknown image type "+c.ImageType)
		}
		if c.ImageURL == "" {
			return nil, domain.NewValidationError("images", "image_url is required")
		}
		images = append(images, domain.OrderImage{
			ImageURL:     c.ImageURL,
			ImageType:    imageType,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return images, nil
}
