package types

import (
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is derived from isPaid and dueDate, never authored directly.
// The persisted value is advisory only and is recomputed on every read.
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending, InvoiceStatusOverdue:
		return nil
	}
	return ierr.NewError("invalid invoice status").
		WithHintf("invalid invoice status: %s", s).
		Mark(ierr.ErrValidation)
}

// InvoiceCategory classifies the kind of work billed by an invoice
type InvoiceCategory string

const (
	InvoiceCategoryProcurement InvoiceCategory = "procurement"
	InvoiceCategoryService     InvoiceCategory = "service"
	InvoiceCategoryRepairs     InvoiceCategory = "repairs"
	InvoiceCategoryDiagnosis   InvoiceCategory = "diagnosis"
)

func (c InvoiceCategory) String() string {
	return string(c)
}

func (c InvoiceCategory) Validate() error {
	switch c {
	case InvoiceCategoryProcurement, InvoiceCategoryService,
		InvoiceCategoryRepairs, InvoiceCategoryDiagnosis:
		return nil
	}
	return ierr.NewError("invalid invoice category").
		WithHintf("invalid invoice category: %s", c).
		Mark(ierr.ErrValidation)
}

// CategoryDefaults are the payment terms pre-seeded when a draft
// selects a category without supplying notes or a tax rate.
type CategoryDefaults struct {
	Notes   string
	TaxRate decimal.Decimal
}

var categoryDefaults = map[InvoiceCategory]CategoryDefaults{
	InvoiceCategoryProcurement: {Notes: "10% service charge for procurement.", TaxRate: decimal.NewFromInt(10)},
	InvoiceCategoryService:     {Notes: "50% down payment expected before booking is made.", TaxRate: decimal.Zero},
	InvoiceCategoryRepairs:     {Notes: "Initial deposit of 70% required.", TaxRate: decimal.NewFromInt(5)},
	InvoiceCategoryDiagnosis:   {Notes: "Full payment required upfront.", TaxRate: decimal.Zero},
}

// DefaultsForCategory returns the default notes and tax rate for a category.
// Unknown categories get zero defaults.
func DefaultsForCategory(c InvoiceCategory) CategoryDefaults {
	if d, ok := categoryDefaults[c]; ok {
		return d
	}
	return CategoryDefaults{TaxRate: decimal.Zero}
}
