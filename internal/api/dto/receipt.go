package dto

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/Kabele/invoicely/internal/domain/receipt"
	"github.com/Kabele/invoicely/internal/types"
	"github.com/Kabele/invoicely/internal/validator"
)

// CreateReceiptRequest records a confirmed payment. The receipt number is
// generated server side and cannot be supplied.
type CreateReceiptRequest struct {
	ClientName  string          `json:"clientName" binding:"required" validate:"required"`
	Description string          `json:"description" binding:"required" validate:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required" validate:"required"`
	PaymentDate string          `json:"paymentDate" binding:"required" validate:"required"`
}

func (r *CreateReceiptRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	_, err := types.ParseDate(r.PaymentDate)
	return err
}

func (r *CreateReceiptRequest) ToReceipt(ctx context.Context) *receipt.Receipt {
	paymentDate, _ := types.ParseDate(r.PaymentDate)

	return &receipt.Receipt{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RECEIPT),
		UserID:        types.GetUserID(ctx),
		ReceiptNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_RECEIPT),
		ClientName:    r.ClientName,
		Description:   r.Description,
		Amount:        r.Amount,
		PaymentDate:   paymentDate,
		CreatedAt:     time.Now().UTC(),
	}
}

type ReceiptResponse struct {
	ID            string          `json:"id"`
	ReceiptNumber string          `json:"receiptNumber"`
	ClientName    string          `json:"clientName"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate"`
}

func NewReceiptResponse(rcpt *receipt.Receipt) *ReceiptResponse {
	return &ReceiptResponse{
		ID:            rcpt.ID,
		ReceiptNumber: rcpt.ReceiptNumber,
		ClientName:    rcpt.ClientName,
		Description:   rcpt.Description,
		Amount:        rcpt.Amount,
		PaymentDate:   types.FormatDate(rcpt.PaymentDate),
	}
}

type ListReceiptsResponse struct {
	Items []*ReceiptResponse `json:"items"`
	Total int                `json:"total"`
}

func NewListReceiptsResponse(receipts []*receipt.Receipt) *ListReceiptsResponse {
	items := lo.Map(receipts, func(rcpt *receipt.Receipt, _ int) *ReceiptResponse {
		return NewReceiptResponse(rcpt)
	})
	return &ListReceiptsResponse{Items: items, Total: len(items)}
}
