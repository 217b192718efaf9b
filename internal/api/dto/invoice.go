package dto

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/types"
	"github.com/Kabele/invoicely/internal/validator"
)

// LineItemRequest is a line item in an invoice draft. An omitted ID is
// assigned server side so clients can send both new and existing items in the
// same list.
type LineItemRequest struct {
	ID          string          `json:"id"`
	Description string          `json:"description" binding:"required" validate:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required" validate:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// CreateInvoiceRequest is an invoice draft. Status and total are derived and
// deliberately absent; a submitted status or total is ignored, never trusted.
type CreateInvoiceRequest struct {
	ClientName         string            `json:"clientName" binding:"required" validate:"required"`
	ProjectDescription string            `json:"projectDescription" binding:"required" validate:"required"`
	DueDate            string            `json:"dueDate" binding:"required" validate:"required"`
	LineItems          []LineItemRequest `json:"lineItems" binding:"required,min=1" validate:"required,min=1"`
	IsPaid             bool              `json:"isPaid"`
	Category           string            `json:"category" binding:"required" validate:"required"`
	TaxRate            *decimal.Decimal  `json:"taxRate"`
	Notes              *string           `json:"notes"`
}

// UpdateInvoiceRequest fully replaces an invoice (last write wins)
type UpdateInvoiceRequest struct {
	CreateInvoiceRequest
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}

	if _, err := types.ParseDate(r.DueDate); err != nil {
		return err
	}

	return types.InvoiceCategory(r.Category).Validate()
}

// ToInvoice builds the domain invoice from the draft. Omitted notes and tax
// rate fall back to the category defaults; explicit values, including empty
// notes and a zero rate, are kept as sent.
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	category := types.InvoiceCategory(r.Category)
	defaults := types.DefaultsForCategory(category)

	taxRate := defaults.TaxRate
	if r.TaxRate != nil {
		taxRate = *r.TaxRate
	}

	notes := defaults.Notes
	if r.Notes != nil {
		notes = *r.Notes
	}

	dueDate, _ := types.ParseDate(r.DueDate)

	items := make([]invoice.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		id := li.ID
		if id == "" {
			id = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_LINE_ITEM)
		}
		items = append(items, invoice.LineItem{
			ID:          id,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
		})
	}

	now := time.Now().UTC()
	return &invoice.Invoice{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		UserID:             types.GetUserID(ctx),
		ClientName:         r.ClientName,
		ProjectDescription: r.ProjectDescription,
		DueDate:            dueDate,
		LineItems:          items,
		IsPaid:             r.IsPaid,
		Category:           category,
		TaxRate:            taxRate,
		Notes:              notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// LineItemResponse mirrors the stored line item on the wire
type LineItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is the wire form of an invoice, due date rendered as a
// calendar date and status freshly derived
type InvoiceResponse struct {
	ID                 string             `json:"id"`
	ClientName         string             `json:"clientName"`
	ProjectDescription string             `json:"projectDescription"`
	DueDate            string             `json:"dueDate"`
	LineItems          []LineItemResponse `json:"lineItems"`
	IsPaid             bool               `json:"isPaid"`
	Category           string             `json:"category"`
	TaxRate            decimal.Decimal    `json:"taxRate"`
	Notes              string             `json:"notes"`
	Status             string             `json:"status"`
	Total              decimal.Decimal    `json:"total"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		items = append(items, LineItemResponse{
			ID:          li.ID,
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Amount:      li.Amount(),
		})
	}

	return &InvoiceResponse{
		ID:                 inv.ID,
		ClientName:         inv.ClientName,
		ProjectDescription: inv.ProjectDescription,
		DueDate:            types.FormatDate(inv.DueDate),
		LineItems:          items,
		IsPaid:             inv.IsPaid,
		Category:           inv.Category.String(),
		TaxRate:            inv.TaxRate,
		Notes:              inv.Notes,
		Status:             inv.Status.String(),
		Total:              inv.Total,
	}
}

// ListInvoicesResponse wraps an invoice collection
type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}

func NewListInvoicesResponse(invoices []*invoice.Invoice) *ListInvoicesResponse {
	items := lo.Map(invoices, func(inv *invoice.Invoice, _ int) *InvoiceResponse {
		return NewInvoiceResponse(inv)
	})
	return &ListInvoicesResponse{Items: items, Total: len(items)}
}
