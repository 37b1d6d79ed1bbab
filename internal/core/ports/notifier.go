package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
)

// Event names carried in the Type field of every pushed payload.
const (
	EventNewOrder       = "new_order"
	EventOrderUpdate    = "order_update"
	EventOrderAvailable = "order_available"
)

// NewOrderEvent is pushed to a restaurant when a customer places an order.
type NewOrderEvent struct {
	Type        string  `json:"type"`
	OrderID     string  `json:"order_id"`
	CustomerID  string  `json:"customer_id"`
	TotalAmount float64 `json:"total_amount"`
	CreatedAt   string  `json:"created_at"`
}

// OrderUpdateEvent is pushed to every connection watching an order
// when its status changes.
type OrderUpdateEvent struct {
	Type      string `json:"type"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

// OrderAvailableEvent is broadcast to delivery agents when an order
// becomes ready to claim.
type OrderAvailableEvent struct {
	Type         string `json:"type"`
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	CreatedAt    string `json:"created_at"`
}

// Notifier delivers order events to connected clients. Delivery is
// fire-and-forget: implementations log per-connection failures and never
// surface them to callers, so a dead socket cannot fail a state change.
type Notifier interface {
	// NotifyUser delivers the event to every connection the user holds on
	// the given order's scope plus every connection on their "all" scope.
	// Each connection receives the event at most once.
	NotifyUser(userID kernel.UUID, orderID kernel.UUID, event any)

	// NotifyRestaurantAll delivers the event to the restaurant's "all"
	// scope connections only.
	NotifyRestaurantAll(restaurantID kernel.UUID, event any)

	// BroadcastToDeliveryAgents delivers the event to the "all" scope
	// connections of every user carrying the delivery agent role.
	BroadcastToDeliveryAgents(ctx context.Context, event any)
}
