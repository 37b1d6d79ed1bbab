package queries

import (
	"context"
	"encoding/json"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves order rows from the database, filtered
// by what the acting user is allowed to see.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listing queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to list the actor's orders.
// Results are sorted by creation time, newest first.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
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
	`
	var args []any
	switch query.ActorRole() {
	case user.RoleAdmin:
	case user.RoleCustomer:
		sql += " WHERE customer_id = ?"
		args = append(args, query.ActorID().Bytes())
	case user.RoleRestaurant:
		sql += " WHERE restaurant_id = ?"
		args = append(args, query.ActorID().Bytes())
	case user.RoleDeliveryAgent:
		sql += " WHERE delivery_agent_id = ?"
		args = append(args, query.ActorID().Bytes())
	}
	sql += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderResponse, 0)
	for rows.Next() {
		resp, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// rowScanner is the subset of sql.Rows / sql.Row used by scanOrderRow.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanOrderRow maps one orders row into an OrderResponse. The column order
// must match the SELECT lists in this package.
func scanOrderRow(row rowScanner) (OrderResponse, error) {
	var resp OrderResponse
	var id, customerID, restaurantID uuid.UUID
	var agentID uuid.NullUUID
	var itemsJSON []byte
	var status int
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&id,
		&customerID,
		&restaurantID,
		&agentID,
		&itemsJSON,
		&resp.TotalAmount,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return OrderResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return OrderResponse{}, err
	}
	if resp.RestaurantID, err = kernel.UUIDFromBytes(restaurantID[:]); err != nil {
		return OrderResponse{}, err
	}
	if agentID.Valid {
		agent, err := kernel.UUIDFromBytes(agentID.UUID[:])
		if err != nil {
			return OrderResponse{}, err
		}
		resp.DeliveryAgentID = &agent
	}

	if err = json.Unmarshal(itemsJSON, &resp.Items); err != nil {
		return OrderResponse{}, err
	}

	resp.Status = order.Status(status).String()
	resp.CreatedAt = createdAt
	resp.UpdatedAt = updatedAt
	return resp, nil
}
