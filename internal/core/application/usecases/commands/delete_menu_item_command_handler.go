package commands

import (
	"context"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
)

// DeleteMenuItemCommandHandler handles the business logic for removing menu items.
type DeleteMenuItemCommandHandler struct {
	uowFactory MenuUoWFactory
}

// NewDeleteMenuItemCommandHandler creates a handler for menu item deletion.
func NewDeleteMenuItemCommandHandler(uowFactory MenuUoWFactory) DeleteMenuItemCommandHandler {
	return DeleteMenuItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the menu item deletion command.
// Only the owning restaurant or an admin may remove an item.
func (h DeleteMenuItemCommandHandler) Handle(ctx context.Context, cmd DeleteMenuItemCommand) error {
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
		return errs.NewUnauthorizedError("delete menu item of another restaurant")
	}

	if err = menuRepo.Delete(ctx, cmd.ItemID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
