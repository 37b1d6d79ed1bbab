package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler retrieves a single order row and enforces per-role
// visibility on it.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query to fetch one order.
// Returns errs.ObjectNotFoundError when the order does not exist and
// errs.UnauthorizedError when the actor may not view it.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			restaurant_id,
			delivery_agent_id,
			items,
			total_amount,
			status,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return OrderResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return OrderResponse{}, err
		}
		return OrderResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
	}

	resp, err := scanOrderRow(rows)
	if err != nil {
		return OrderResponse{}, err
	}

	if !canView(resp, query.ActorID(), query.ActorRole()) {
		return OrderResponse{}, errs.NewUnauthorizedError("view order")
	}

	return resp, nil
}

// canView mirrors the order aggregate's visibility rules over a scanned row.
func canView(resp OrderResponse, actorID kernel.UUID, role user.Role) bool {
	switch role {
	case user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return resp.CustomerID.IsEqual(actorID)
	case user.RoleRestaurant:
		return resp.RestaurantID.IsEqual(actorID)
	case user.RoleDeliveryAgent:
		if resp.DeliveryAgentID != nil {
			return resp.DeliveryAgentID.IsEqual(actorID)
		}
		return resp.Status == order.AssignedToDelivery.String()
	}
	return false
}
