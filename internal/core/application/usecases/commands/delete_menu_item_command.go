package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var ErrDeleteMenuItemCommandIsNotConstructed = errors.New(
	"DeleteMenuItemCommand must be created via NewDeleteMenuItemCommand constructor",
)

// DeleteMenuItemCommand represents a request to remove a menu item.
type DeleteMenuItemCommand struct { //nolint:recvcheck //using for validation
	itemID    kernel.UUID
	actorID   kernel.UUID
	actorRole user.Role

	guard guard.ConstructorGuard
}

// NewDeleteMenuItemCommand creates a command to remove a menu item.
func NewDeleteMenuItemCommand(itemID, actorID kernel.UUID, actorRole user.Role) (DeleteMenuItemCommand, error) {
	cmd := DeleteMenuItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setActor(actorID, actorRole),
	); err != nil {
		return DeleteMenuItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteMenuItemCommandIsNotConstructed)
}

// ItemID returns the identifier of the menu item being removed.
func (c DeleteMenuItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// ActorID returns the identifier of the acting user.
func (c DeleteMenuItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the acting user.
func (c DeleteMenuItemCommand) ActorRole() user.Role {
	return c.actorRole
}

func (c *DeleteMenuItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *DeleteMenuItemCommand) setActor(actorID kernel.UUID, actorRole user.Role) error {
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
