package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order represents a customer bouquet order. BouquetPrice is a snapshot taken
// at creation time and is never touched again, so later catalog price changes
// do not affect existing orders.
type Order struct {
	ID              int             `json:"id"`
	OrderNumber     string          `json:"order_number"`
	BouquetID       int             `json:"bouquet_id"`
	CustomerName    string          `json:"customer_name"`
	SenderName      string          `json:"sender_name"`
	SenderPhone     string          `json:"sender_phone"`
	PaymentMethod   string          `json:"payment_method"`
	BouquetPrice    decimal.Decimal `json:"bouquet_price"`
	PaymentType     PaymentType     `json:"payment_type"`
	DPAmount        decimal.Decimal `json:"dp_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	PickupDate      time.Time       `json:"pickup_date"`
	PickupTime      string          `json:"pickup_time"`
	Notes           *string         `json:"notes"`
	OrderStatus     OrderStatus     `json:"order_status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	Images          []OrderImage    `json:"images,omitempty"`
	Logs            []*OrderLog     `json:"logs,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderImage is owned by its order and is deleted with it. DisplayOrder is a
// non-unique sort key preserving the order the caller supplied.
type OrderImage struct {
	ID           int       `json:"id"`
	OrderID      int       `json:"order_id"`
	ImageURL     string    `json:"image_url"`
	ImageType    ImageType `json:"image_type"`
	DisplayOrder int       `json:"display_order"`
}

const (
	openingHour = 8
	closingHour = 18
)

// ComputePaymentSplit calculates dp/remaining amounts for a new order.
// DP orders put dpPercent of the price down and owe the rest; FULL orders
// carry no split and settle everything on payment confirmation.
func ComputePaymentSplit(price decimal.Decimal, pt PaymentType, dpPercent decimal.Decimal) (dp, remaining decimal.Decimal) {
	if pt == PaymentTypeDP {
		dp = price.Mul(dpPercent).Div(decimal.NewFromInt(100)).Round(0)
		remaining = price.Sub(dp)
		return dp, remaining
	}
	return decimal.Zero, decimal.Zero
}

// ValidatePickup applies the pickup scheduling rules: the date must not be in
// the past, the time must fall within opening hours (08:00 through 18:00
// inclusive), and same-day pickups need at least one hour of lead time.
func ValidatePickup(pickupDate time.Time, pickupTime string, now time.Time) error {
	t, err := time.Parse("15:04", pickupTime)
	if err != nil {
		return NewValidationError("pickup_time", "must be in HH:MM format")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(pickupDate.Year(), pickupDate.Month(), pickupDate.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return NewValidationError("pickup_date", "must not be in the past")
	}

	minutes := t.Hour()*60 + t.Minute()
	if minutes < openingHour*60 || minutes > closingHour*60 {
		return NewValidationError("pickup_time", "must be within operating hours 08:00-18:00")
	}

	if day.Equal(today) {
		earliest := now.Add(time.Hour)
		closing := today.Add(closingHour * time.Hour)
		if earliest.After(closing) {
			return NewValidationError("pickup_time", "no pickup slots left today, please choose the next day")
		}
		pickup := day.Add(time.Duration(minutes) * time.Minute)
		if pickup.Before(earliest) {
			return NewValidationError("pickup_time", "must be at least one hour from now")
		}
	}

	return nil
}

// CanTransitionTo checks the order status state machine.
func (o *Order) CanTransitionTo(newStatus OrderStatus) bool {
	validTransitions := map[OrderStatus][]OrderStatus{
		StatusWaitingConfirmation: {StatusPaymentConfirmed, StatusCancelled},
		StatusPaymentConfirmed:    {StatusInProcess, StatusCancelled},
		StatusInProcess:           {StatusReadyForPickup, StatusCancelled},
		StatusReadyForPickup:      {StatusCompleted, StatusCancelled},
		StatusCompleted:           {},
		StatusCancelled:           {},
	}

	for _, s := range validTransitions[o.OrderStatus] {
		if s == newStatus {
			return true
		}
	}
	return false
}

// MarkPaid settles the order in full. "Paid" always means fully settled:
// any partial-payment bookkeeping is overridden.
func (o *Order) MarkPaid() {
	o.PaymentStatus = PaymentPaid
	o.TotalPaid = o.BouquetPrice
	o.RemainingAmount = decimal.Zero
}
