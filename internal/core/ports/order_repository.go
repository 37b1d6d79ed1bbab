package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate and locks its row for the
	// duration of the active transaction. Concurrent status changes on the
	// same order serialize behind the lock, which is what makes the
	// first-to-claim rule for delivery agents atomic.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllWithoutPayment retrieves orders that have no settled payment yet.
	// Used by the payment reconciliation job to retry failed settlements.
	GetAllWithoutPayment(ctx context.Context) ([]*order.Order, error)
}
