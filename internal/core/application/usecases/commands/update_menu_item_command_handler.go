package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// UpdateMenuItemCommandHandler handles the business logic for editing menu items.
type UpdateMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

// NewUpdateMenuItemCommandHandler creates a handler for menu item updates.
func NewUpdateMenuItemCommandHandler(uowFactory MenuUoWFactory) UpdateMenuItemCommandHandler {
	return UpdateMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the menu item update command.
// Ownership is checked against the stored item, not the request payload.
func (h UpdateMenuItemCommandHandler) Handle(ctx context.Context, cmd UpdateMenuItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	menuRepo := uow.MenuItemRepository()

	item, err := menuRepo.Get(ctx, cmd.ItemID())
	if err != nil {
		return err
	}

	if cmd.ActorRole() != user.RoleAdmin && !item.BelongsTo(cmd.ActorID()) {
		return errs.NewUnauthorizedError("update menu item of another restaurant")
	}

	if err = item.Edit(cmd.Name(), cmd.Description(), cmd.Price(), cmd.IsAvailable()); err != nil {
		return err
	}

	if err = menuRepo.Update(ctx, item); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
