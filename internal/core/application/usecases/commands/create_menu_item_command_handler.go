package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// CreateMenuItemCommandHandler handles the business logic for adding menu items.
type CreateMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

// NewCreateMenuItemCommandHandler creates a handler for menu item creation.
func NewCreateMenuItemCommandHandler(uowFactory MenuUoWFactory) CreateMenuItemCommandHandler {
	return CreateMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the menu item creation command.
// Restaurants may only add items to their own menu; admins may add items anywhere.
func (h CreateMenuItemCommandHandler) Handle(ctx context.Context, cmd CreateMenuItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.ActorRole() {
	case user.RoleAdmin:
	case user.RoleRestaurant:
		if !cmd.ActorID().IsEqual(cmd.RestaurantID()) {
			return errs.NewUnauthorizedError("create menu item for another restaurant")
		}
	default:
		return errs.NewUnauthorizedError("create menu item")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := menu.NewMenuItem(cmd.ItemID(), cmd.RestaurantID(), cmd.Name(), cmd.Description(), cmd.Price(), cmd.IsAvailable())
	if err != nil {
		return err
	}

	if err = uow.MenuItemRepository().Add(ctx, item); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
