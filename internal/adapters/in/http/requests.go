package http

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin restaurant customer delivery_agent"`
}

// TokenRequest is the body of POST /token.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MenuItemRequest is the body of POST /menu and PUT /menu/:item_id.
// RestaurantID is only read on creation; updates keep the owner.
type MenuItemRequest struct {
	RestaurantID string  `json:"restaurant_id"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" validate:"gte=0"`
	IsAvailable  *bool   `json:"is_available"`
}

// OrderItemRequest is one line of CreateOrderRequest.
type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid4"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	RestaurantID string             `json:"restaurant_id" validate:"required,uuid4"`
	Items        []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:order_id/status.
type UpdateOrderStatusRequest struct {
	Status          string  `json:"status" validate:"required"`
	DeliveryAgentID *string `json:"delivery_agent_id,omitempty"`
}

// CreatePaymentRequest is the body of POST /payments.
type CreatePaymentRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid4"`
}
