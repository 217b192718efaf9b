package invoice

import "context"

// Repository defines the interface for invoice persistence operations.
// All operations are scoped to the authenticated user carried in the context.
type Repository interface {
	// Create persists a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update replaces an existing invoice by ID (last write wins)
	Update(ctx context.Context, invoice *Invoice) error

	// Delete removes an invoice by ID. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List retrieves all invoices of the current user
	List(ctx context.Context) ([]*Invoice, error)
}
