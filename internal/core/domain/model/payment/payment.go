// Package payment provides the Payment aggregate.
//
// A payment is one-to-one with an order, carries the order's total split
// into a restaurant share and a delivery fee, and is immutable once created.
// Re-requesting payment for an order that already has one returns the
// existing record unchanged.
package payment

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// StatusCompleted is the only status the mock settlement produces.
const StatusCompleted = "completed"

// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Payment represents the settled funds of one order. The amount equals the
// order's total at the moment of creation; the record never changes afterwards.
type Payment struct {
	id              kernel.UUID
	orderID         kernel.UUID
	amount          float64
	restaurantShare float64
	deliveryFee     float64
	status          string
	createdAt       time.Time

	guard guard.ConstructorGuard
}

// NewPayment creates an immutable payment record for an order.
// All monetary values must be non-negative.
func NewPayment(id, orderID kernel.UUID, amount, restaurantShare, deliveryFee float64, createdAt time.Time) (*Payment, error) {
	p := &Payment{
		status:    StatusCompleted,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setAmounts(amount, restaurantShare, deliveryFee),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(id, orderID kernel.UUID, amount, restaurantShare, deliveryFee float64, status string, createdAt time.Time) (*Payment, error) {
	p, err := NewPayment(id, orderID, amount, restaurantShare, deliveryFee, createdAt)
	if err != nil {
		return nil, err
	}

	if status == "" {
		return nil, errs.NewValueIsRequiredError("status")
	}
	p.status = status
	return p, nil
}

// Validate ensures the Payment instance was properly constructed through NewPayment.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the identifier of the paid order.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Amount returns the total settled, equal to the order's total at creation time.
func (p *Payment) Amount() float64 {
	return p.amount
}

// RestaurantShare returns the portion owed to the restaurant.
func (p *Payment) RestaurantShare() float64 {
	return p.restaurantShare
}

// DeliveryFee returns the portion retained as the delivery fee.
func (p *Payment) DeliveryFee() float64 {
	return p.deliveryFee
}

// Status returns the settlement status.
func (p *Payment) Status() string {
	return p.status
}

// CreatedAt returns when the payment was settled.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.orderID = id
	return nil
}

func (p *Payment) setAmounts(amount, restaurantShare, deliveryFee float64) error {
	if amount < 0 {
		return errs.NewValueIsOutOfRangeError("amount", amount, 0, "unbounded")
	}
	if restaurantShare < 0 {
		return errs.NewValueIsOutOfRangeError("restaurantShare", restaurantShare, 0, "unbounded")
	}
	if deliveryFee < 0 {
		return errs.NewValueIsOutOfRangeError("deliveryFee", deliveryFee, 0, "unbounded")
	}

	p.amount = amount
	p.restaurantShare = restaurantShare
	p.deliveryFee = deliveryFee
	return nil
}
