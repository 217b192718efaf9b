package memory

import (
	"context"

	"github.com/Kabele/invoicely/internal/domain/receipt"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
)

// InMemoryReceiptStore implements receipt.Repository
type InMemoryReceiptStore struct {
	store *InMemoryStore[*receipt.Receipt]
}

// NewInMemoryReceiptStore creates a new in-memory receipt store
func NewInMemoryReceiptStore() *InMemoryReceiptStore {
	return &InMemoryReceiptStore{
		store: NewInMemoryStore[*receipt.Receipt](),
	}
}

func copyReceipt(r *receipt.Receipt) *receipt.Receipt {
	if r == nil {
		return nil
	}
	out := *r
	return &out
}

func (s *InMemoryReceiptStore) Create(ctx context.Context, r *receipt.Receipt) error {
	if r == nil {
		return ierr.NewError("receipt cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, r.ID, copyReceipt(r))
}

func (s *InMemoryReceiptStore) Get(ctx context.Context, id string) (*receipt.Receipt, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil || r.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("receipt not found").
			WithHintf("receipt %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyReceipt(r), nil
}

func (s *InMemoryReceiptStore) List(ctx context.Context) ([]*receipt.Receipt, error) {
	userID := types.GetUserID(ctx)
	items, err := s.store.List(ctx, func(ctx context.Context, r *receipt.Receipt) bool {
		return r.UserID == userID
	}, func(i, j *receipt.Receipt) bool {
		return i.PaymentDate.After(j.PaymentDate)
	})
	if err != nil {
		return nil, err
	}

	out := make([]*receipt.Receipt, len(items))
	for i, r := range items {
		out[i] = copyReceipt(r)
	}
	return out, nil
}

// Clear removes all receipts, for tests
func (s *InMemoryReceiptStore) Clear() {
	s.store.Clear()
}
