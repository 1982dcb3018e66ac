package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputePaymentSplit(t *testing.T) {
	tests := []struct {
		name          string
		price         string
		paymentType   PaymentType
		dpPercent     int64
		wantDP        string
		wantRemaining string
	}{
		{"dp thirty percent", "150000", PaymentTypeDP, 30, "45000", "105000"},
		{"dp rounds to whole units", "99999", PaymentTypeDP, 30, "30000", "69999"},
		{"dp fifty percent", "200000", PaymentTypeDP, 50, "100000", "100000"},
		{"full payment has no split", "150000", PaymentTypeFull, 30, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.price)
			dp, remaining := ComputePaymentSplit(price, tt.paymentType, decimal.NewFromInt(tt.dpPercent))

			if dp.String() != tt.wantDP {
				t.Errorf("dp = %s, want %s", dp, tt.wantDP)
			}
			if remaining.String() != tt.wantRemaining {
				t.Errorf("remaining = %s, want %s", remaining, tt.wantRemaining)
			}
			if tt.paymentType == PaymentTypeDP && !dp.Add(remaining).Equal(price) {
				t.Errorf("dp + remaining = %s, want %s", dp.Add(remaining), price)
			}
		})
	}
}

func TestValidatePickup(t *testing.T) {
	// Tuesday noon.
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name       string
		pickupDate time.Time
		pickupTime string
		now        time.Time
		wantField  string // empty means no error expected
	}{
		{"future date mid-day", tomorrow, "10:00", now, ""},
		{"opening boundary accepted", tomorrow, "08:00", now, ""},
		{"closing boundary accepted", tomorrow, "18:00", now, ""},
		{"before opening rejected", tomorrow, "07:59", now, "pickup_time"},
		{"after closing rejected", tomorrow, "18:01", now, "pickup_time"},
		{"past date rejected", yesterday, "10:00", now, "pickup_date"},
		{"bad time format rejected", tomorrow, "6pm", now, "pickup_time"},
		{"same day with enough lead", now, "13:00", now, ""},
		{"same day too soon", now, "12:30", now, "pickup_time"},
		{"same day no slots left", now, "18:00", time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC), "pickup_time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePickup(tt.pickupDate, tt.pickupTime, tt.now)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidatePickup() = %v, want nil", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidatePickup() = %v, want ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("field = %s, want %s", ve.Field, tt.wantField)
			}
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{StatusWaitingConfirmation, StatusPaymentConfirmed, true},
		{StatusWaitingConfirmation, StatusCancelled, true},
		{StatusWaitingConfirmation, StatusInProcess, false},
		{StatusWaitingConfirmation, StatusCompleted, false},
		{StatusPaymentConfirmed, StatusInProcess, true},
		{StatusPaymentConfirmed, StatusWaitingConfirmation, false},
		{StatusInProcess, StatusReadyForPickup, true},
		{StatusInProcess, StatusCancelled, true},
		{StatusReadyForPickup, StatusCompleted, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusWaitingConfirmation, false},
	}

	for _, tt := range tests {
		order := &Order{OrderStatus: tt.from}
		if got := order.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []OrderStatus{StatusCompleted, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}
	for _, s := range []OrderStatus{StatusWaitingConfirmation, StatusPaymentConfirmed, StatusInProcess, StatusReadyForPickup} {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
}

func TestMarkPaid(t *testing.T) {
	order := &Order{
		BouquetPrice:    decimal.NewFromInt(150000),
		PaymentType:     PaymentTypeDP,
		DPAmount:        decimal.NewFromInt(45000),
		RemainingAmount: decimal.NewFromInt(105000),
		TotalPaid:       decimal.NewFromInt(45000),
		PaymentStatus:   PaymentUnpaid,
	}

	order.MarkPaid()

	if order.PaymentStatus != PaymentPaid {
		t.Errorf("payment status = %s, want %s", order.PaymentStatus, PaymentPaid)
	}
	if !order.TotalPaid.Equal(order.BouquetPrice) {
		t.Errorf("total paid = %s, want %s", order.TotalPaid, order.BouquetPrice)
	}
	if !order.RemainingAmount.IsZero() {
		t.Errorf("remaining = %s, want 0", order.RemainingAmount)
	}
}
