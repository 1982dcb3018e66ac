package postgres

import (
	"context"
	"fmt"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type bouquetRepository struct {
	db DB
}

func NewBouquetRepository(db DB) interfaces.BouquetRepository {
	return &bouquetRepository{db: db}
}

func (r *bouquetRepository) Create(ctx context.Context, bouquet *domain.Bouquet) error {
	query := `
		INSERT INTO bouquets (name, price, description, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		bouquet.Name, bouquet.Price, bouquet.Description, bouquet.ImageURL,
		bouquet.IsActive, bouquet.CreatedAt, bouquet.UpdatedAt,
	).Scan(&bouquet.ID)
	if err != nil {
		return fmt.Errorf("failed to insert bouquet: %w", err)
	}
	return nil
}

func (r *bouquetRepository) FindByID(ctx context.Context, id int) (*domain.Bouquet, error) {
	query := `
		SELECT id, name, price, description, image_url, is_active, created_at, updated_at
		FROM bouquets
		WHERE id = $1
	`
	var b domain.Bouquet
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Price, &b.Description, &b.ImageURL, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.NewNotFoundError("bouquet")
		}
		return nil, fmt.Errorf("failed to load bouquet: %w", err)
	}
	return &b, nil
}

func (r *bouquetRepository) Update(ctx context.Context, bouquet *domain.Bouquet) error {
	query := `
		UPDATE bouquets
		SET name = $1, price = $2, description = $3, image_url = $4, is_active = $5, updated_at = $6
		WHERE id = $7
	`
	tag, err := r.db.Exec(ctx, query,
		bouquet.Name, bouquet.Price, bouquet.Description, bouquet.ImageURL,
		bouquet.IsActive, bouquet.UpdatedAt, bouquet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bouquet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("bouquet")
	}
	return nil
}

func (r *bouquetRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Bouquet, error) {
	query := `
		SELECT id, name, price, description, image_url, is_active, created_at, updated_at
		FROM bouquets
	`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bouquets: %w", err)
	}
	defer rows.Close()

	var bouquets []*domain.Bouquet
	for rows.Next() {
		var b domain.Bouquet
		if err := rows.Scan(&b.ID, &b.Name, &b.Price, &b.Description, &b.ImageURL, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bouquet: %w", err)
		}
		bouquets = append(bouquets, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bouquets: %w", err)
	}

	return bouquets, nil
}
