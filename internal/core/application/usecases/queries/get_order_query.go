package queries

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order on behalf of an acting user.
// Visibility follows the order's participant rules: the customer, the
// restaurant, the assigned agent, and admins may view it. A delivery agent
// may additionally view an unassigned order awaiting pickup.
type GetOrderQuery struct {
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to fetch one order for an acting user.
func NewGetOrderQuery(orderID, actorID kernel.UUID, actorRole user.Role) (GetOrderQuery, error) {
	if err := errors.Join(orderID.Validate(), actorID.Validate(), actorRole.Validate()); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:   orderID,
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the requested order.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ActorID returns the identifier of the acting user.
func (q GetOrderQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the role of the acting user.
func (q GetOrderQuery) ActorRole() user.Role {
	return q.actorRole
}
