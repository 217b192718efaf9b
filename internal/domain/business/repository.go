package business

import "context"

// Repository defines the interface for business profile persistence.
// There is exactly one profile per user; Get returns a not-found error until
// the first Upsert seeds it.
type Repository interface {
	// Get retrieves the current user's profile
	Get(ctx context.Context) (*BusinessInfo, error)

	// Upsert creates or replaces the current user's profile
	Upsert(ctx context.Context, info *BusinessInfo) error
}
