package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type settingsRepository struct {
	db DB
}

func NewSettingsRepository(db DB) interfaces.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT key, value, description, updated_at FROM settings WHERE key = $1`

	var s domain.Setting
	err := r.db.QueryRow(ctx, query, key).Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt)
	if err != nil {
		if IsNoRows(err) {
			return nil, domain.NewNotFoundError("setting")
		}
		return nil, fmt.Errorf("failed to load setting: %w", err)
	}
	return &s, nil
}

func (r *settingsRepository) GetAll(ctx context.Context) ([]*domain.Setting, error) {
	rows, err := r.db.Query(ctx, `SELECT key, value, description, updated_at FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	var settings []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	return settings, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	setting.UpdatedAt = time.Now()
	query := `
		INSERT INTO settings (key, value, description, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, setting.Key, setting.Value, setting.Description, setting.UpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}
