package postgres

import (
	"context"
	"time"

	"github.com/Kabele/invoicely/internal/config"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB wraps sqlx.DB with the configured connection pool
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// NewDB opens a postgres connection pool from the configuration
func NewDB(cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	client := &DB{DB: db, logger: logger}

	if cfg.Postgres.AutoMigrate {
		if err := client.Migrate(context.Background()); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create schema").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS auths (
		user_id TEXT PRIMARY KEY,
		provider TEXT NOT NULL,
		token TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		client_name TEXT NOT NULL,
		project_description TEXT NOT NULL,
		due_date DATE NOT NULL,
		line_items JSONB NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		category TEXT NOT NULL,
		tax_rate NUMERIC(5,2) NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		total NUMERIC(20,4) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_user_id ON invoices (user_id)`,
	`CREATE TABLE IF NOT EXISTS receipts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		receipt_number TEXT NOT NULL,
		client_name TEXT NOT NULL,
		description TEXT NOT NULL,
		amount NUMERIC(20,4) NOT NULL,
		payment_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_receipts_user_id ON receipts (user_id)`,
	`CREATE TABLE IF NOT EXISTS business_profiles (
		user_id TEXT PRIMARY KEY,
		business_name TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		website TEXT NOT NULL DEFAULT '',
		socials TEXT NOT NULL DEFAULT '',
		account_name TEXT NOT NULL DEFAULT '',
		account_number TEXT NOT NULL DEFAULT '',
		primary_color TEXT NOT NULL DEFAULT '',
		accent_color TEXT NOT NULL DEFAULT '',
		logo_image TEXT NOT NULL DEFAULT '',
		signature_image TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}
