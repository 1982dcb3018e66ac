package domain

import "time"

type OrderStatus string

const (
	StatusWaitingConfirmation OrderStatus = "WAITING_CONFIRMATION"
	StatusPaymentConfirmed    OrderStatus = "PAYMENT_CONFIRMED"
	StatusInProcess           OrderStatus = "IN_PROCESS"
	StatusReadyForPickup      OrderStatus = "READY_FOR_PICKUP"
	StatusCompleted           OrderStatus = "COMPLETED"
	StatusCancelled           OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusWaitingConfirmation, StatusPaymentConfirmed, StatusInProcess,
		StatusReadyForPickup, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

func (p PaymentStatus) Valid() bool {
	return p == PaymentUnpaid || p == PaymentPaid
}

type PaymentType string

const (
	PaymentTypeDP   PaymentType = "DP"
	PaymentTypeFull PaymentType = "FULL"
)

func (p PaymentType) Valid() bool {
	return p == PaymentTypeDP || p == PaymentTypeFull
}

type ImageType string

const (
	ImageTypeReference      ImageType = "REFERENCE"
	ImageTypePaymentProof   ImageType = "PAYMENT_PROOF"
	ImageTypeDesiredBouquet ImageType = "DESIRED_BOUQUET"
)

func (t ImageType) Valid() bool {
	switch t {
	case ImageTypeReference, ImageTypePaymentProof, ImageTypeDesiredBouquet:
		return true
	}
	return false
}

// OrderLog is an append-only audit entry. Rows are never updated or deleted.
// AdminID is nil for system-attributed entries (e.g. the creation log).
type OrderLog struct {
	ID             int       `json:"id"`
	OrderID        int       `json:"order_id"`
	AdminID        *int      `json:"admin_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}
