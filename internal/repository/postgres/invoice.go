package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/types"
	"github.com/shopspring/decimal"
)

type invoiceRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

// invoiceRow flattens the domain model for scanning; line items travel as JSONB
type invoiceRow struct {
	ID                 string          `db:"id"`
	UserID             string          `db:"user_id"`
	ClientName         string          `db:"client_name"`
	ProjectDescription string          `db:"project_description"`
	DueDate            time.Time       `db:"due_date"`
	LineItems          []byte          `db:"line_items"`
	IsPaid             bool            `db:"is_paid"`
	Category           string          `db:"category"`
	TaxRate            decimal.Decimal `db:"tax_rate"`
	Notes              string          `db:"notes"`
	Status             string          `db:"status"`
	Total              decimal.Decimal `db:"total"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

func (r invoiceRow) toDomain() (*invoice.Invoice, error) {
	var items []invoice.LineItem
	if err := json.Unmarshal(r.LineItems, &items); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to decode invoice line items").
			Mark(ierr.ErrDatabase)
	}

	return &invoice.Invoice{
		ID:                 r.ID,
		UserID:             r.UserID,
		ClientName:         r.ClientName,
		ProjectDescription: r.ProjectDescription,
		DueDate:            r.DueDate,
		LineItems:          items,
		IsPaid:             r.IsPaid,
		Category:           types.InvoiceCategory(r.Category),
		TaxRate:            r.TaxRate,
		Notes:              r.Notes,
		Status:             types.InvoiceStatus(r.Status),
		Total:              r.Total,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode invoice line items").
			Mark(ierr.ErrSystem)
	}

	query := `
	INSERT INTO invoices (
		id, user_id, client_name, project_description, due_date, line_items,
		is_paid, category, tax_rate, notes, status, total, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err = r.db.ExecContext(
		ctx, query,
		inv.ID,
		inv.UserID,
		inv.ClientName,
		inv.ProjectDescription,
		inv.DueDate,
		items,
		inv.IsPaid,
		inv.Category.String(),
		inv.TaxRate,
		inv.Notes,
		inv.Status.String(),
		inv.Total,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	userID := types.GetUserID(ctx)
	query := `SELECT * FROM invoices WHERE id = $1 AND user_id = $2`

	var row invoiceRow
	err := r.db.GetContext(ctx, &row, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain()
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	items, err := json.Marshal(inv.LineItems)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode invoice line items").
			Mark(ierr.ErrSystem)
	}

	query := `
	UPDATE invoices SET
		client_name = $3, project_description = $4, due_date = $5, line_items = $6,
		is_paid = $7, category = $8, tax_rate = $9, notes = $10, status = $11,
		total = $12, updated_at = $13
	WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(
		ctx, query,
		inv.ID,
		types.GetUserID(ctx),
		inv.ClientName,
		inv.ProjectDescription,
		inv.DueDate,
		items,
		inv.IsPaid,
		inv.Category.String(),
		inv.TaxRate,
		inv.Notes,
		inv.Status.String(),
		inv.Total,
		inv.UpdatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", inv.ID).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

// Delete is idempotent: deleting an absent ID affects zero rows and succeeds
func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM invoices WHERE id = $1 AND user_id = $2`

	_, err := r.db.ExecContext(ctx, query, id, types.GetUserID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*invoice.Invoice, error) {
	query := `SELECT * FROM invoices WHERE user_id = $1 ORDER BY due_date DESC`

	var rows []invoiceRow
	if err := r.db.SelectContext(ctx, &rows, query, types.GetUserID(ctx)); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}

	out := make([]*invoice.Invoice, 0, len(rows))
	for _, row := range rows {
		inv, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}
