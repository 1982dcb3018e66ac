package migrations

import (
	"context"
	"fmt"

	"github.com/amaryllis-studio/florist/internal/adapter/postgres"
)

// Run creates the schema idempotently at startup.
func Run(ctx context.Context, db postgres.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS bouquets (
			id SERIAL PRIMARY KEY,
			name VARCHAR(200) NOT NULL,
			price NUMERIC(12, 2) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number VARCHAR(32) NOT NULL UNIQUE,
			bouquet_id INTEGER NOT NULL REFERENCES bouquets(id),
			customer_name VARCHAR(100) NOT NULL,
			sender_name VARCHAR(100) NOT NULL,
			sender_phone VARCHAR(32) NOT NULL DEFAULT '',
			payment_method VARCHAR(32) NOT NULL,
			bouquet_price NUMERIC(12, 2) NOT NULL,
			payment_type VARCHAR(8) NOT NULL,
			dp_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
			remaining_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
			total_paid NUMERIC(12, 2) NOT NULL DEFAULT 0,
			pickup_date DATE NOT NULL,
			pickup_time VARCHAR(5) NOT NULL,
			notes TEXT,
			order_status VARCHAR(32) NOT NULL,
			payment_status VARCHAR(16) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_images (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			image_url TEXT NOT NULL,
			image_type VARCHAR(32) NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS order_logs (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id),
			admin_id INTEGER,
			previous_status VARCHAR(32) NOT NULL,
			new_status VARCHAR(32) NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key VARCHAR(64) PRIMARY KEY,
			value TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS admins (
			id SERIAL PRIMARY KEY,
			username VARCHAR(64) NOT NULL UNIQUE,
			password_hash VARCHAR(128) NOT NULL,
			full_name VARCHAR(100) NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_order_status ON orders(order_status)`,
		`CREATE INDEX IF NOT EXISTS idx_order_logs_order_id ON order_logs(order_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
