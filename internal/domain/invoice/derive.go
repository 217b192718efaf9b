package invoice

import (
	"time"

	"github.com/Kabele/invoicely/internal/types"
	"github.com/shopspring/decimal"
)

// ComputeStatus derives the invoice status. Paid wins over everything; an
// unpaid invoice is Overdue once its due date is a calendar day strictly in
// the past, date-only in UTC, so an invoice is never overdue on its due date.
func ComputeStatus(isPaid bool, dueDate time.Time, now time.Time) types.InvoiceStatus {
	if isPaid {
		return types.InvoiceStatusPaid
	}
	if types.IsPastDay(dueDate, now) {
		return types.InvoiceStatusOverdue
	}
	return types.InvoiceStatusPending
}

// ComputeSubtotal sums quantity × unit price over all line items
func ComputeSubtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Amount())
	}
	return subtotal
}

// ComputeTotal derives the invoice total: subtotal plus tax, where taxRate is
// a percentage in [0,100]. A zero-value taxRate is treated as no tax.
func ComputeTotal(items []LineItem, taxRate decimal.Decimal) decimal.Decimal {
	subtotal := ComputeSubtotal(items)
	taxAmount := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	return subtotal.Add(taxAmount)
}

// ApplyDerived recomputes the derived fields in place. Called before every
// persistence pass so the stored values never disagree with their sources at
// write time.
func (i *Invoice) ApplyDerived(now time.Time) {
	i.Total = ComputeTotal(i.LineItems, i.TaxRate)
	i.Status = ComputeStatus(i.IsPaid, i.DueDate, now)
}

// WithFreshStatus returns a shallow copy with Status re-derived against now.
// Reads must go through this: the persisted status is advisory only.
func (i *Invoice) WithFreshStatus(now time.Time) *Invoice {
	out := *i
	out.Status = ComputeStatus(i.IsPaid, i.DueDate, now)
	return &out
}
