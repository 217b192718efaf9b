package service

import (
	"context"

	"github.com/Kabele/invoicely/internal/api/dto"
)

type ReceiptService interface {
	CreateReceipt(ctx context.Context, req *dto.CreateReceiptRequest) (*dto.ReceiptResponse, error)
	GetReceipt(ctx context.Context, id string) (*dto.ReceiptResponse, error)
	ListReceipts(ctx context.Context) (*dto.ListReceiptsResponse, error)
}

type receiptService struct {
	ServiceParams
}

func NewReceiptService(params ServiceParams) ReceiptService {
	return &receiptService{ServiceParams: params}
}

// CreateReceipt generates a receipt for a confirmed payment. Receipts are
// immutable from here on: there is no update or delete path.
func (s *receiptService) CreateReceipt(ctx context.Context, req *dto.CreateReceiptRequest) (*dto.ReceiptResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rcpt := req.ToReceipt(ctx)
	if err := rcpt.Validate(); err != nil {
		return nil, err
	}

	if err := s.ReceiptRepo.Create(ctx, rcpt); err != nil {
		return nil, err
	}

	s.Logger.Infow("receipt generated",
		"receipt_id", rcpt.ID,
		"receipt_number", rcpt.ReceiptNumber,
	)
	return dto.NewReceiptResponse(rcpt), nil
}

func (s *receiptService) GetReceipt(ctx context.Context, id string) (*dto.ReceiptResponse, error) {
	rcpt, err := s.ReceiptRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewReceiptResponse(rcpt), nil
}

func (s *receiptService) ListReceipts(ctx context.Context) (*dto.ListReceiptsResponse, error) {
	receipts, err := s.ReceiptRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListReceiptsResponse(receipts), nil
}
