package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetPaymentQueryIsNotConstructed = errors.New(
	"GetPaymentQuery must be created via NewGetPaymentQuery constructor",
)

// GetPaymentQuery retrieves the payment settled for an order.
type GetPaymentQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetPaymentQuery creates a query to fetch an order's payment.
func NewGetPaymentQuery(orderID kernel.UUID) (GetPaymentQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPaymentQuery{}, err
	}

	return GetPaymentQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPaymentQuery) Validate() error {
	return q.guard.Validate(ErrGetPaymentQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose payment is requested.
func (q GetPaymentQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetPaymentQueryResponse represents a payment row.
type GetPaymentQueryResponse struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	Amount          float64
	RestaurantShare float64
	DeliveryFee     float64
	Status          string
	CreatedAt       time.Time
}
