package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bouquet is a purchasable catalog product. Deactivating a bouquet hides it
// from the customer catalog but keeps the row, since orders reference it.
type Bouquet struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
