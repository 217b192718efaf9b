package memory

import (
	"context"

	"github.com/Kabele/invoicely/internal/domain/business"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
)

// InMemoryBusinessStore implements business.Repository, keyed by user ID
// since each user owns exactly one profile.
type InMemoryBusinessStore struct {
	store *InMemoryStore[*business.BusinessInfo]
}

// NewInMemoryBusinessStore creates a new in-memory business profile store
func NewInMemoryBusinessStore() *InMemoryBusinessStore {
	return &InMemoryBusinessStore{
		store: NewInMemoryStore[*business.BusinessInfo](),
	}
}

func copyBusinessInfo(b *business.BusinessInfo) *business.BusinessInfo {
	if b == nil {
		return nil
	}
	out := *b
	return &out
}

func (s *InMemoryBusinessStore) Get(ctx context.Context) (*business.BusinessInfo, error) {
	userID := types.GetUserID(ctx)
	info, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, ierr.NewError("business profile not found").
			WithHint("Business profile has not been created yet").
			Mark(ierr.ErrNotFound)
	}
	return copyBusinessInfo(info), nil
}

func (s *InMemoryBusinessStore) Upsert(ctx context.Context, info *business.BusinessInfo) error {
	if info == nil {
		return ierr.NewError("business info cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.store.Upsert(ctx, info.UserID, copyBusinessInfo(info))
}

// Clear removes all profiles, for tests
func (s *InMemoryBusinessStore) Clear() {
	s.store.Clear()
}
