package memory

import (
	"context"

	"github.com/Kabele/invoicely/internal/domain/user"
	ierr "github.com/Kabele/invoicely/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	store *InMemoryStore[*user.User]
}

// NewInMemoryUserStore creates a new in-memory user store
func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		store: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.store.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	u, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("user not found").
			WithHintf("user %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.store.List(ctx, func(ctx context.Context, u *user.User) bool {
		return u.Email == email
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("user not found").
			WithHintf("no user with email %s", email).
			Mark(ierr.ErrNotFound)
	}
	return users[0], nil
}

// Clear removes all users, for tests
func (s *InMemoryUserStore) Clear() {
	s.store.Clear()
}
