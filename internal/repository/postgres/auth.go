package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kabele/invoicely/internal/domain/auth"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
)

type authRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewAuthRepository(db *DB, logger *logger.Logger) auth.Repository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateAuth(ctx context.Context, a *auth.Auth) error {
	query := `INSERT INTO auths (user_id, provider, token, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, a.UserID, a.Provider, a.Token, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to store credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *authRepository) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	query := `SELECT * FROM auths WHERE user_id = $1`

	var a auth.Auth
	err := r.db.GetContext(ctx, &a, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewError("credentials not found").
			WithHintf("no credentials found for user %s", userID).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get credentials").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *authRepository) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	query := `UPDATE auths SET provider = $2, token = $3, updated_at = $4 WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, a.UserID, a.Provider, a.Token, a.UpdatedAt)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update credentials").
			Mark(ierr.ErrDatabase)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("credentials not found").
			WithHintf("no credentials found for user %s", a.UserID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *authRepository) DeleteAuth(ctx context.Context, userID string) error {
	query := `DELETE FROM auths WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete credentials").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
