package postgres

import (
	"context"
	"fmt"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type adminRepository struct {
	db DB
}

func NewAdminRepository(db DB) interfaces.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
		SELECT id, username, password_hash, full_name, is_active, created_at, updated_at
		FROM admins
		WHERE username = $1
	`
	var a domain.Admin
	err := r.db.QueryRow(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.NewNotFoundError("admin")
		}
		return nil, fmt.Errorf("failed to load admin: %w", err)
	}
	return &a, nil
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (username, password_hash, full_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		admin.Username, admin.PasswordHash, admin.FullName, admin.IsActive, admin.CreatedAt, admin.UpdatedAt,
	).Scan(&admin.ID)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

func (r *adminRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}
