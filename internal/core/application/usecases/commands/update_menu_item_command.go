package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateMenuItemCommandIsNotConstructed = errors.New(
	"UpdateMenuItemCommand must be created via NewUpdateMenuItemCommand constructor",
)

// UpdateMenuItemCommand represents a request to edit an existing menu item.
// Only the owning restaurant or an admin may edit an item.
type UpdateMenuItemCommand struct { //nolint:recvcheck //using for validation
	itemID      kernel.UUID
	actorID     kernel.UUID
	actorRole   user.Role
	name        string
	description string
	price       float64
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewUpdateMenuItemCommand creates a command to edit a menu item.
func NewUpdateMenuItemCommand(
	itemID, actorID kernel.UUID,
	actorRole user.Role,
	name, description string,
	price float64,
	isAvailable bool,
) (UpdateMenuItemCommand, error) {
	cmd := UpdateMenuItemCommand{
		description: description,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setActor(actorID, actorRole),
		cmd.setName(name),
		cmd.setPrice(price),
	); err != nil {
		return UpdateMenuItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMenuItemCommandIsNotConstructed)
}

// ItemID returns the identifier of the menu item being edited.
func (c UpdateMenuItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ActorID returns the identifier of the acting user.
func (c UpdateMenuItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the acting user.
func (c UpdateMenuItemCommand) ActorRole() user.Role {
	return c.actorRole
}

// Name returns the new menu item name.
func (c UpdateMenuItemCommand) Name() string {
	return c.name
}

// Description returns the new menu item description.
func (c UpdateMenuItemCommand) Description() string {
	return c.description
}

// Price returns the new menu item price.
func (c UpdateMenuItemCommand) Price() float64 {
	return c.price
}

// IsAvailable reports whether the item should remain orderable.
func (c UpdateMenuItemCommand) IsAvailable() bool {
	return c.isAvailable
}

func (c *UpdateMenuItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateMenuItemCommand) setActor(actorID kernel.UUID, actorRole user.Role) error {
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

func (c *UpdateMenuItemCommand) setName(name string) error {
	if name == "" {
		return ErrMenuItemNameIsRequired
	}

	c.name = name
	return nil
}

func (c *UpdateMenuItemCommand) setPrice(price float64) error {
	if price < 0 {
		return ErrPriceIsNegative
	}

	c.price = price
	return nil
}
