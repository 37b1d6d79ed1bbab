package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateMenuItemCommandIsNotConstructed = errors.New(
		"CreateMenuItemCommand must be created via NewCreateMenuItemCommand constructor",
	)
	ErrMenuItemNameIsRequired = errors.New("menu item name is required")
	ErrPriceIsNegative        = errors.New("price must not be negative")
)

// CreateMenuItemCommand represents a request to add an item to a restaurant's menu.
// The acting user must carry the restaurant role and owns the created item;
// an admin may create items for any restaurant.
type CreateMenuItemCommand struct { //nolint:recvcheck //using for validation
	itemID       kernel.UUID
	restaurantID kernel.UUID
	actorID      kernel.UUID
	actorRole    user.Role
	name         string
	description  string
	price        float64
	isAvailable  bool

	guard guard.ConstructorGuard
}

// NewCreateMenuItemCommand creates a command to add a menu item.
// Validates identifiers, the actor role, a non-empty name, and a non-negative price.
func NewCreateMenuItemCommand(
	itemID, restaurantID, actorID kernel.UUID,
	actorRole user.Role,
	name, description string,
	price float64,
	isAvailable bool,
) (CreateMenuItemCommand, error) {
	cmd := CreateMenuItemCommand{
		description: description,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setRestaurantID(restaurantID),
		cmd.setActor(actorID, actorRole),
		cmd.setName(name),
		cmd.setPrice(price),
	); err != nil {
		return CreateMenuItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateMenuItemCommandIsNotConstructed)
}

// ItemID returns the identifier assigned to the new menu item.
func (c CreateMenuItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// RestaurantID returns the restaurant the item is created for.
func (c CreateMenuItemCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// ActorID returns the identifier of the acting user.
func (c CreateMenuItemCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the role of the acting user.
func (c CreateMenuItemCommand) ActorRole() user.Role {
	return c.actorRole
}

// Name returns the menu item name.
func (c CreateMenuItemCommand) Name() string {
	return c.name
}

// Description returns the menu item description.
func (c CreateMenuItemCommand) Description() string {
	return c.description
}

// Price returns the menu item price.
func (c CreateMenuItemCommand) Price() float64 {
	return c.price
}

// IsAvailable reports whether the item should be orderable right away.
func (c CreateMenuItemCommand) IsAvailable() bool {
	return c.isAvailable
}

func (c *CreateMenuItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *CreateMenuItemCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateMenuItemCommand) setActor(actorID kernel.UUID, actorRole user.Role) error {
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

func (c *CreateMenuItemCommand) setName(name string) error {
	if name == "" {
		return ErrMenuItemNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateMenuItemCommand) setPrice(price float64) error {
	if price < 0 {
		return ErrPriceIsNegative
	}

	c.price = price
	return nil
}
