package interfaces

import (
	"context"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	ListOrders(ctx context.Context, q ListOrdersQuery) ([]*domain.Order, *Pagination, error)
	UpdateStatus(ctx context.Context, id int, cmd UpdateOrderStatusCommand) (*domain.Order, error)
}

type CatalogService interface {
	CreateBouquet(ctx context.Context, cmd BouquetCommand) (*domain.Bouquet, error)
	GetBouquet(ctx context.Context, id int) (*domain.Bouquet, error)
	UpdateBouquet(ctx context.Context, id int, cmd BouquetCommand) (*domain.Bouquet, error)
	DeactivateBouquet(ctx context.Context, id int) error
	ListBouquets(ctx context.Context, activeOnly bool) ([]*domain.Bouquet, error)
}

type SettingsService interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	GetAll(ctx context.Context) ([]*domain.Setting, error)
	Set(ctx context.Context, key, value, description string) (*domain.Setting, error)
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Admin, error)
	Verify(token string) (*AuthClaims, error)
}

type UploadService interface {
	Save(ctx context.Context, filename string, data []byte, compress bool) (string, error)
}

// Commands and queries exchanged between the HTTP adapter and the services.

type CreateOrderCommand struct {
	BouquetID     int
	CustomerName  string
	SenderName    string
	SenderPhone   string
	PaymentMethod string
	PaymentType   string
	PickupDate    string // 2006-01-02
	PickupTime    string // 15:04
	Notes         *string
	Images        []CreateOrderImageCommand
}

type CreateOrderImageCommand struct {
	ImageURL     string
	ImageType    string
	DisplayOrder int
}

type UpdateOrderStatusCommand struct {
	Status        *string
	PaymentStatus *string
	Notes         *string
	AdminID       *int
	ChangedBy     string
}

type ListOrdersQuery struct {
	Search        string
	Status        string
	PaymentStatus string
	Page          int
	Limit         int
}

type BouquetCommand struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	IsActive    *bool
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// AuthClaims is the decoded content of a verified session token.
type AuthClaims struct {
	AdminID  int    `json:"admin_id"`
	Username string `json:"username"`
}
