package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrCreatePaymentCommandIsNotConstructed = errors.New(
	"CreatePaymentCommand must be created via NewCreatePaymentCommand constructor",
)

// CreatePaymentCommand represents a request to settle the payment for an
// order. Settlement is idempotent: if the order already has a payment the
// command succeeds without creating anything.
type CreatePaymentCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewCreatePaymentCommand creates a command to settle an order's payment.
func NewCreatePaymentCommand(orderID, actorID kernel.UUID, actorRole user.Role) (CreatePaymentCommand, error) {
	cmd := CreatePaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return CreatePaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePaymentCommand) Validate() error {
	return c.guard.Validate(ErrCreatePaymentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being settled.
func (c CreatePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the acting user.
func (c CreatePaymentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the acting user.
func (c CreatePaymentCommand) ActorRole() user.Role {
	return c.actorRole
}

func (c *CreatePaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreatePaymentCommand) setActor(actorID kernel.UUID, actorRole user.Role) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	c.actorRole = actorRole
	return nil
}
