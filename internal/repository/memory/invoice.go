package memory

import (
	"context"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	store *InMemoryStore[*invoice.Invoice]
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		store: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}

	out := *inv
	out.LineItems = make([]invoice.LineItem, len(inv.LineItems))
	copy(out.LineItems, inv.LineItems)
	return &out
}

func invoiceOwnedBy(userID string) FilterFunc[*invoice.Invoice] {
	return func(ctx context.Context, inv *invoice.Invoice) bool {
		return inv.UserID == userID
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.store.Get(ctx, id)
	if err != nil || inv.UserID != types.GetUserID(ctx) {
		return nil, ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}
	if _, err := s.Get(ctx, inv.ID); err != nil {
		return err
	}
	return s.store.Update(ctx, inv.ID, copyInvoice(inv))
}

// Delete is idempotent: a missing ID is not an error
func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); ierr.IsNotFound(err) {
		return nil
	}
	return s.store.Delete(ctx, id)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context) ([]*invoice.Invoice, error) {
	items, err := s.store.List(ctx, invoiceOwnedBy(types.GetUserID(ctx)),
		func(i, j *invoice.Invoice) bool { return i.DueDate.After(j.DueDate) })
	if err != nil {
		return nil, err
	}

	out := make([]*invoice.Invoice, len(items))
	for i, inv := range items {
		out[i] = copyInvoice(inv)
	}
	return out, nil
}

// Clear removes all invoices, for tests
func (s *InMemoryInvoiceStore) Clear() {
	s.store.Clear()
}
