package memory

import (
	"context"

	"github.com/Kabele/invoicely/internal/domain/auth"
	ierr "github.com/Kabele/invoicely/internal/errors"
)

// InMemoryAuthStore implements auth.Repository, keyed by user ID
type InMemoryAuthStore struct {
	store *InMemoryStore[*auth.Auth]
}

// NewInMemoryAuthStore creates a new in-memory auth store
func NewInMemoryAuthStore() *InMemoryAuthStore {
	return &InMemoryAuthStore{
		store: NewInMemoryStore[*auth.Auth](),
	}
}

func (s *InMemoryAuthStore) CreateAuth(ctx context.Context, a *auth.Auth) error {
	if a == nil {
		return ierr.NewError("auth cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, a.UserID, a)
}

func (s *InMemoryAuthStore) GetAuthByUserID(ctx context.Context, userID string) (*auth.Auth, error) {
	a, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, ierr.NewError("auth not found").
			WithHintf("no credential for user %s", userID).
			Mark(ierr.ErrNotFound)
	}
	return a, nil
}

func (s *InMemoryAuthStore) UpdateAuth(ctx context.Context, a *auth.Auth) error {
	if a == nil {
		return ierr.NewError("auth cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.store.Update(ctx, a.UserID, a)
}

func (s *InMemoryAuthStore) DeleteAuth(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}

// Clear removes all credentials, for tests
func (s *InMemoryAuthStore) Clear() {
	s.store.Clear()
}
