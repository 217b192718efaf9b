package invoice

import (
	"time"

	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem is a single billable entry within an invoice
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Amount returns quantity × unit price
func (li LineItem) Amount() decimal.Decimal {
	return li.Quantity.Mul(li.UnitPrice)
}

// Validate validates a line item at the mutation boundary
func (li LineItem) Validate() error {
	if li.Description == "" {
		return ierr.NewError("line item validation failed").
			WithHint("Line item description is required").
			Mark(ierr.ErrValidation)
	}

	if !li.Quantity.IsPositive() {
		return ierr.NewError("line item validation failed").
			WithHint("Quantity must be positive").
			Mark(ierr.ErrValidation)
	}

	if li.UnitPrice.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHint("Unit price must be non negative").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Invoice is the invoice domain model. Status and Total are derived fields:
// they are recomputed from the other fields before every write, and Status is
// re-derived again at read time since it drifts with the current date.
type Invoice struct {
	ID                 string                `db:"id" json:"id"`
	UserID             string                `db:"user_id" json:"-"`
	ClientName         string                `db:"client_name" json:"clientName"`
	ProjectDescription string                `db:"project_description" json:"projectDescription"`
	DueDate            time.Time             `db:"due_date" json:"dueDate"`
	LineItems          []LineItem            `db:"-" json:"lineItems"`
	IsPaid             bool                  `db:"is_paid" json:"isPaid"`
	Category           types.InvoiceCategory `db:"category" json:"category"`
	TaxRate            decimal.Decimal       `db:"tax_rate" json:"taxRate"`
	Notes              string                `db:"notes" json:"notes"`
	Status             types.InvoiceStatus   `db:"status" json:"status"`
	Total              decimal.Decimal       `db:"total" json:"total"`
	CreatedAt          time.Time             `db:"created_at" json:"-"`
	UpdatedAt          time.Time             `db:"updated_at" json:"-"`
}

// Validate validates an invoice draft before any persistence attempt
func (i *Invoice) Validate() error {
	if i.ClientName == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Client name is required").
			Mark(ierr.ErrValidation)
	}

	if i.ProjectDescription == "" {
		return ierr.NewError("invoice validation failed").
			WithHint("Project description is required").
			Mark(ierr.ErrValidation)
	}

	if i.DueDate.IsZero() {
		return ierr.NewError("invoice validation failed").
			WithHint("Due date is required").
			Mark(ierr.ErrValidation)
	}

	if len(i.LineItems) == 0 {
		return ierr.NewError("invoice validation failed").
			WithHint("At least one line item is required").
			Mark(ierr.ErrValidation)
	}

	for _, item := range i.LineItems {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	if err := i.Category.Validate(); err != nil {
		return err
	}

	if i.TaxRate.IsNegative() || i.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("invoice validation failed").
			WithHint("Tax rate must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}

	return nil
}
