package interfaces

import (
	"context"

	"github.com/amaryllis-studio/florist/internal/domain"
)

type OrderRepository interface {
	// Create persists the order together with its images and the initial
	// audit log row in a single transaction. Returns
	// domain.ErrDuplicateOrderNumber when the order number collides.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context, q ListOrdersQuery) ([]*domain.Order, int, error)
	Update(ctx context.Context, order *domain.Order) error
	GenerateOrderNumber(ctx context.Context) (string, error)
	AppendLog(ctx context.Context, log *domain.OrderLog) error
	GetLogs(ctx context.Context, orderID int) ([]*domain.OrderLog, error)
}

type BouquetRepository interface {
	Create(ctx context.Context, bouquet *domain.Bouquet) error
	FindByID(ctx context.Context, id int) (*domain.Bouquet, error)
	Update(ctx context.Context, bouquet *domain.Bouquet) error
	List(ctx context.Context, activeOnly bool) ([]*domain.Bouquet, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	GetAll(ctx context.Context) ([]*domain.Setting, error)
	Upsert(ctx context.Context, setting *domain.Setting) error
}

type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	Create(ctx context.Context, admin *domain.Admin) error
	Count(ctx context.Context) (int, error)
}
