package receipt

import (
	"time"

	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/shopspring/decimal"
)

// Receipt records a confirmed payment. Receipts are immutable once generated
// and carry no stored foreign key to their source invoice; any linkage is
// reconstructed ad hoc for display.
type Receipt struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"-"`
	ReceiptNumber string          `db:"receipt_number" json:"receiptNumber"`
	ClientName    string          `db:"client_name" json:"clientName"`
	Description   string          `db:"description" json:"description"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	PaymentDate   time.Time       `db:"payment_date" json:"paymentDate"`
	CreatedAt     time.Time       `db:"created_at" json:"-"`
}

// Validate validates a receipt before it is generated
func (r *Receipt) Validate() error {
	if r.ClientName == "" {
		return ierr.NewError("receipt validation failed").
			WithHint("Client name is required").
			Mark(ierr.ErrValidation)
	}

	if r.Description == "" {
		return ierr.NewError("receipt validation failed").
			WithHint("A description of the payment is required").
			Mark(ierr.ErrValidation)
	}

	if !r.Amount.IsPositive() {
		return ierr.NewError("receipt validation failed").
			WithHint("Amount must be positive").
			Mark(ierr.ErrValidation)
	}

	if r.PaymentDate.IsZero() {
		return ierr.NewError("receipt validation failed").
			WithHint("Payment date is required").
			Mark(ierr.ErrValidation)
	}

	return nil
}
