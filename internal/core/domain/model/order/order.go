package order

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrLineItemsAreRequired is returned when attempting to create an order without line items.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Actor identifies who is attempting an operation on an order.
// The role comes from the verified bearer credential and gates
// which status transitions the actor may request.
type Actor struct {
	ID   kernel.UUID
	Role user.Role
}

// Order represents a food delivery order. It is the aggregate root that
// manages the order lifecycle from placement through delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier, customer, and restaurant
//   - Must have at least one line item; line items never change after creation
//   - The total amount is a snapshot of menu prices at creation time and is
//     never recomputed
//   - Status only ever advances forward through the fixed transition chain
//   - updatedAt advances on every mutation
//
// Authorization for status changes is enforced by ChangeStatus per the
// actor's role:
//   - admin: any valid transition
//   - restaurant: accepted and assigned_to_delivery on its own orders
//   - delivery_agent: picked_up and delivered if already assigned, or
//     first-to-claim when the order sits unassigned in assigned_to_delivery
//   - customer: none
type Order struct {
	id              kernel.UUID
	customerID      kernel.UUID
	restaurantID    kernel.UUID
	deliveryAgentID *kernel.UUID
	items           []LineItem
	totalAmount     float64
	status          Status
	createdAt       time.Time
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the placed state.
// This is the only way to create a valid Order, ensuring all business
// invariants are maintained. The total amount must already be computed
// from the referenced menu items' current prices; it is fixed from here on.
func NewOrder(
	id, customerID, restaurantID kernel.UUID,
	items []LineItem,
	totalAmount float64,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Placed,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setItems(items),
		o.setTotalAmount(totalAmount),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status,
// optional delivery agent assignment, and timestamps. All invariants are
// revalidated so corrupted rows surface as errors.
func RestoreOrder(
	id, customerID, restaurantID kernel.UUID,
	deliveryAgentID *kernel.UUID,
	items []LineItem,
	totalAmount float64,
	status Status,
	createdAt, updatedAt time.Time,
) (*Order, error) {
	o, err := NewOrder(id, customerID, restaurantID, items, totalAmount, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}
	if deliveryAgentID != nil {
		if err = deliveryAgentID.Validate(); err != nil {
			return nil, err
		}
	}

	o.status = status
	o.deliveryAgentID = deliveryAgentID
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder.
// This method should be called when reconstructing orders from persistence
// to ensure data integrity.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the identifier of the restaurant the order targets.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// DeliveryAgent returns the assigned delivery agent's ID.
// Returns nil if no agent is assigned.
func (o *Order) DeliveryAgent() *kernel.UUID {
	return o.deliveryAgentID
}

// Items returns the line items captured at creation time.
func (o *Order) Items() []LineItem {
	return o.items
}

// TotalAmount returns the total computed from menu prices at creation time.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// CanBeViewedBy reports whether the actor may read this order.
// Customers see their own orders, restaurants theirs, delivery agents the
// orders assigned to them plus unassigned orders awaiting claim, and admins
// everything.
func (o *Order) CanBeViewedBy(actor Actor) bool {
	switch actor.Role {
	case user.RoleAdmin:
		return true
	case user.RoleCustomer:
		return o.customerID.IsEqual(actor.ID)
	case user.RoleRestaurant:
		return o.restaurantID.IsEqual(actor.ID)
	case user.RoleDeliveryAgent:
		if o.deliveryAgentID != nil && o.deliveryAgentID.IsEqual(actor.ID) {
			return true
		}
		return o.status == AssignedToDelivery && o.deliveryAgentID == nil
	default:
		return false
	}
}

// ChangeStatus applies a status transition requested by an actor.
//
// Authorization is evaluated before transition validity, so an actor who may
// never reach the target status receives Unauthorized even if the transition
// itself would be invalid. When an unassigned order in assigned_to_delivery
// is moved to picked_up by a delivery agent, the agent is recorded as the
// order's delivery agent in the same mutation (the claim). Callers must
// serialize concurrent claims per order (row lock) so exactly one wins.
//
// On success the status advances and updatedAt is set to now.
func (o *Order) ChangeStatus(actor Actor, target Status, now time.Time) error {
	if err := o.authorize(actor, target); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	claiming := actor.Role == user.RoleDeliveryAgent &&
		target == PickedUp &&
		o.deliveryAgentID == nil

	o.status = newStatus
	if claiming {
		agentID := actor.ID
		o.deliveryAgentID = &agentID
	}
	o.updatedAt = now
	return nil
}

// AssignAgent attaches a delivery agent to the order without touching the
// status. Used when a restaurant or admin names the agent explicitly in a
// status-update request.
func (o *Order) AssignAgent(agentID kernel.UUID, now time.Time) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	o.deliveryAgentID = &agentID
	o.updatedAt = now
	return nil
}

// authorize checks the role/ownership matrix for a requested target status.
func (o *Order) authorize(actor Actor, target Status) error {
	switch actor.Role {
	case user.RoleAdmin:
		return nil

	case user.RoleRestaurant:
		if !o.restaurantID.IsEqual(actor.ID) {
			return errs.NewUnauthorizedError("update order status")
		}
		if target != Accepted && target != AssignedToDelivery {
			return errs.NewUnauthorizedError("update order status")
		}
		return nil

	case user.RoleDeliveryAgent:
		if target != PickedUp && target != Delivered {
			return errs.NewUnauthorizedError("update order status")
		}
		if o.deliveryAgentID != nil && o.deliveryAgentID.IsEqual(actor.ID) {
			return nil
		}
		// first-to-claim: the order must still be unassigned and awaiting pickup
		if o.deliveryAgentID == nil && o.status == AssignedToDelivery {
			return nil
		}
		return errs.NewUnauthorizedErrorWithCause("claim order", errors.New("order already assigned to another agent"))

	default:
		return errs.NewUnauthorizedError("update order status")
	}
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.customerID = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}
	o.items = items
	return nil
}

func (o *Order) setTotalAmount(total float64) error {
	if total < 0 {
		return errs.NewValueIsOutOfRangeError("totalAmount", total, 0, "unbounded")
	}
	o.totalAmount = total
	return nil
}
