package receipt

import "context"

// Repository defines the interface for receipt persistence operations.
// Receipts are immutable: the contract deliberately carries no update or
// delete. All operations are scoped to the authenticated user in the context.
type Repository interface {
	// Create persists a new receipt
	Create(ctx context.Context, receipt *Receipt) error

	// Get retrieves a receipt by ID
	Get(ctx context.Context, id string) (*Receipt, error)

	// List retrieves all receipts of the current user
	List(ctx context.Context) ([]*Receipt, error)
}
