package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kabele/invoicely/internal/domain/business"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
)

type businessRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewBusinessRepository(db *DB, logger *logger.Logger) business.Repository {
	return &businessRepository{db: db, logger: logger}
}

func (r *businessRepository) Get(ctx context.Context) (*business.BusinessInfo, error) {
	query := `SELECT * FROM business_profiles WHERE user_id = $1`

	var info business.BusinessInfo
	err := r.db.GetContext(ctx, &info, query, types.GetUserID(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewError("business profile not found").
			WithHint("No business profile has been saved yet").
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get business profile").
			Mark(ierr.ErrDatabase)
	}
	return &info, nil
}

func (r *businessRepository) Upsert(ctx context.Context, info *business.BusinessInfo) error {
	query := `
	INSERT INTO business_profiles (
		user_id, business_name, address, email, website, socials,
		account_name, account_number, primary_color, accent_color,
		logo_image, signature_image, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (user_id) DO UPDATE SET
		business_name = EXCLUDED.business_name,
		address = EXCLUDED.address,
		email = EXCLUDED.email,
		website = EXCLUDED.website,
		socials = EXCLUDED.socials,
		account_name = EXCLUDED.account_name,
		account_number = EXCLUDED.account_number,
		primary_color = EXCLUDED.primary_color,
		accent_color = EXCLUDED.accent_color,
		logo_image = EXCLUDED.logo_image,
		signature_image = EXCLUDED.signature_image,
		updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(
		ctx, query,
		info.UserID,
		info.BusinessName,
		info.Address,
		info.Email,
		info.Website,
		info.Socials,
		info.AccountName,
		info.AccountNumber,
		info.PrimaryColor,
		info.AccentColor,
		info.LogoImage,
		info.SignatureImage,
		info.CreatedAt,
		info.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to save business profile").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
