package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves the orders visible to the acting user.
// Admins see every order; customers and restaurants see their own;
// delivery agents see the orders assigned to them.
type GetOrdersQuery struct {
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query to list orders for an acting user.
func NewGetOrdersQuery(actorID kernel.UUID, actorRole user.Role) (GetOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}
	if err := actorRole.Validate(); err != nil {
		return GetOrdersQuery{}, err
	}

	return GetOrdersQuery{
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// ActorID returns the identifier of the acting user.
func (q GetOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the role of the acting user.
func (q GetOrdersQuery) ActorRole() user.Role {
	return q.actorRole
}

// OrderItemResponse represents a single line of an order response.
type OrderItemResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// OrderResponse represents a full order row, shared by the list and
// single-order queries.
type OrderResponse struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	RestaurantID    kernel.UUID
	DeliveryAgentID *kernel.UUID
	Items           []OrderItemResponse
	TotalAmount     float64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
