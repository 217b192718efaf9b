package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kabele/invoicely/internal/domain/receipt"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
)

type receiptRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewReceiptRepository(db *DB, logger *logger.Logger) receipt.Repository {
	return &receiptRepository{db: db, logger: logger}
}

func (r *receiptRepository) Create(ctx context.Context, rcpt *receipt.Receipt) error {
	query := `
	INSERT INTO receipts (
		id, user_id, receipt_number, client_name, description, amount, payment_date, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(
		ctx, query,
		rcpt.ID,
		rcpt.UserID,
		rcpt.ReceiptNumber,
		rcpt.ClientName,
		rcpt.Description,
		rcpt.Amount,
		rcpt.PaymentDate,
		rcpt.CreatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create receipt").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *receiptRepository) Get(ctx context.Context, id string) (*receipt.Receipt, error) {
	query := `SELECT * FROM receipts WHERE id = $1 AND user_id = $2`

	var rcpt receipt.Receipt
	err := r.db.GetContext(ctx, &rcpt, query, id, types.GetUserID(ctx))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewError("receipt not found").
			WithHintf("receipt %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get receipt").
			Mark(ierr.ErrDatabase)
	}
	return &rcpt, nil
}

func (r *receiptRepository) List(ctx context.Context) ([]*receipt.Receipt, error) {
	query := `SELECT * FROM receipts WHERE user_id = $1 ORDER BY payment_date DESC`

	var receipts []*receipt.Receipt
	if err := r.db.SelectContext(ctx, &receipts, query, types.GetUserID(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list receipts").
			Mark(ierr.ErrDatabase)
	}
	return receipts, nil
}
