package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Kabele/invoicely/internal/types"
)

func TestComputeStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		isPaid  bool
		dueDate time.Time
		want    types.InvoiceStatus
	}{
		{
			name:    "paid wins over past due date",
			isPaid:  true,
			dueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			want:    types.InvoiceStatusPaid,
		},
		{
			name:    "unpaid with future due date is pending",
			isPaid:  false,
			dueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			want:    types.InvoiceStatusPending,
		},
		{
			name:    "unpaid with past due date is overdue",
			isPaid:  false,
			dueDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			want:    types.InvoiceStatusOverdue,
		},
		{
			name:    "due today is still pending",
			isPaid:  false,
			dueDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			want:    types.InvoiceStatusPending,
		},
		{
			name:    "due today late in the day is still pending",
			isPaid:  false,
			dueDate: time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC),
			want:    types.InvoiceStatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.isPaid, tt.dueDate, now))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	items := []LineItem{
		{
			ID:          "item_1",
			Description: "Consulting",
			Quantity:    decimal.NewFromInt(10),
			UnitPrice:   decimal.NewFromInt(50),
		},
	}

	t.Run("ten percent tax on 500", func(t *testing.T) {
		total := ComputeTotal(items, decimal.NewFromInt(10))
		assert.True(t, total.Equal(decimal.NewFromInt(550)), "got %s", total)
	})

	t.Run("zero tax rate", func(t *testing.T) {
		total := ComputeTotal(items, decimal.Zero)
		assert.True(t, total.Equal(decimal.NewFromInt(500)), "got %s", total)
	})

	t.Run("multiple line items", func(t *testing.T) {
		multi := append(items, LineItem{
			ID:          "item_2",
			Description: "Materials",
			Quantity:    decimal.NewFromInt(3),
			UnitPrice:   decimal.RequireFromString("19.99"),
		})
		total := ComputeTotal(multi, decimal.Zero)
		assert.True(t, total.Equal(decimal.RequireFromString("559.97")), "got %s", total)
	})

	t.Run("no line items", func(t *testing.T) {
		total := ComputeTotal(nil, decimal.NewFromInt(10))
		assert.True(t, total.IsZero())
	})
}

func TestWithFreshStatus(t *testing.T) {
	inv := &Invoice{
		ID:      "inv_1",
		IsPaid:  false,
		DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:  types.InvoiceStatusPending,
	}

	// the stored status is stale once the due date passes
	fresh := inv.WithFreshStatus(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, types.InvoiceStatusOverdue, fresh.Status)

	// the original is untouched
	assert.Equal(t, types.InvoiceStatusPending, inv.Status)
}

func TestApplyDerived(t *testing.T) {
	inv := &Invoice{
		ID: "inv_1",
		LineItems: []LineItem{
			{ID: "item_1", Description: "Repair", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(100)},
		},
		TaxRate: decimal.NewFromInt(5),
		IsPaid:  true,
		DueDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	inv.ApplyDerived(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))

	assert.True(t, inv.Total.Equal(decimal.NewFromInt(210)), "got %s", inv.Total)
	assert.Equal(t, types.InvoiceStatusPaid, inv.Status)
}

func TestInvoiceValidate(t *testing.T) {
	valid := func() *Invoice {
		return &Invoice{
			ClientName:         "Acme Ltd",
			ProjectDescription: "Office fit-out",
			DueDate:            time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			Category:           types.InvoiceCategoryService,
			TaxRate:            decimal.Zero,
			LineItems: []LineItem{
				{ID: "item_1", Description: "Labour", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
			},
		}
	}

	t.Run("valid invoice", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing client name", func(t *testing.T) {
		inv := valid()
		inv.ClientName = ""
		assert.Error(t, inv.Validate())
	})

	t.Run("no line items", func(t *testing.T) {
		inv := valid()
		inv.LineItems = nil
		assert.Error(t, inv.Validate())
	})

	t.Run("zero quantity line item", func(t *testing.T) {
		inv := valid()
		inv.LineItems[0].Quantity = decimal.Zero
		assert.Error(t, inv.Validate())
	})

	t.Run("negative unit price", func(t *testing.T) {
		inv := valid()
		inv.LineItems[0].UnitPrice = decimal.NewFromInt(-1)
		assert.Error(t, inv.Validate())
	})

	t.Run("unknown category", func(t *testing.T) {
		inv := valid()
		inv.Category = "consulting"
		assert.Error(t, inv.Validate())
	})

	t.Run("tax rate above 100", func(t *testing.T) {
		inv := valid()
		inv.TaxRate = decimal.NewFromInt(101)
		assert.Error(t, inv.Validate())
	})
}
