package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Verifies the restaurant and its menu, freezes the total from current
// prices, settles the mock payment, and pushes a new_order event to the
// restaurant's live connections.
//
// Settlement runs in its own transaction after the order is committed: a
// payment failure is logged and left for the reconciliation job, it never
// undoes the placed order.
type CreateOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	settlement services.SettlementService
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement operations.
func NewCreateOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	settlement services.SettlementService,
	notifier ports.Notifier,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		notifier:   notifier,
		logger:     logger.With("component", "create_order_handler"),
	}
}

// Handle processes the order placement command.
// Every line item must reference an existing menu item owned by the target
// restaurant. The order starts in the placed status.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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

	restaurant, err := uow.UserRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}
	if restaurant.Role() != user.RoleRestaurant {
		return errs.NewObjectNotFoundError("restaurant_id", cmd.RestaurantID().String())
	}

	menuRepo := uow.MenuItemRepository()
	var total float64
	for _, line := range cmd.Items() {
		item, err := menuRepo.Get(ctx, line.MenuItemID())
		if err != nil {
			return err
		}
		if !item.BelongsTo(cmd.RestaurantID()) {
			return errs.NewValueIsInvalidError("menu_item_id")
		}
		total += item.Price() * float64(line.Quantity())
	}

	now := time.Now().UTC()
	aggregate, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.RestaurantID(), cmd.Items(), total, now)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.settle(ctx, aggregate)

	h.notifier.NotifyRestaurantAll(cmd.RestaurantID(), ports.NewOrderEvent{
		Type:        ports.EventNewOrder,
		OrderID:     aggregate.ID().String(),
		CustomerID:  aggregate.CustomerID().String(),
		TotalAmount: aggregate.TotalAmount(),
		CreatedAt:   aggregate.CreatedAt().Format(time.RFC3339),
	})

	return nil
}

// settle creates the mock payment for a freshly placed order in a separate
// transaction. Failures leave the order unpaid for the reconciliation job.
func (h CreateOrderCommandHandler) settle(ctx context.Context, aggregate *order.Order) {
	pay, err := h.settlement.Settle(aggregate.ID(), aggregate.TotalAmount(), time.Now().UTC())
	if err != nil {
		h.logger.ErrorContext(ctx, "settlement failed, order left unpaid", "order_id", aggregate.ID().String(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.ErrorContext(ctx, "settlement transaction failed to start", "order_id", aggregate.ID().String(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PaymentRepository().Add(ctx, pay); err != nil {
		h.logger.ErrorContext(ctx, "failed to persist payment, order left unpaid", "order_id", aggregate.ID().String(), "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to commit payment, order left unpaid", "order_id", aggregate.ID().String(), "error", err)
	}
}
