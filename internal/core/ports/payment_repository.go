package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for payment aggregates.
type PaymentRepository interface {
	// Add persists a new payment aggregate to storage.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrderID retrieves the payment settled for the given order.
	// Returns errs.ObjectNotFoundError when the order has no payment,
	// which is how payment creation stays idempotent per order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
