package commands

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// UpdateOrderStatusCommandHandler handles the business logic for order
// lifecycle transitions. The order row is locked for the duration of the
// transaction, so two delivery agents claiming the same order serialize
// and exactly one of them wins.
//
// After the transaction commits, the new status is pushed to the customer,
// the restaurant, and the assigned agent. When an order lands in
// assigned_to_delivery without an agent attached, every connected delivery
// agent additionally receives an order_available broadcast.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewUpdateOrderStatusCommandHandler creates a handler for status change operations.
func NewUpdateOrderStatusCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status change command.
// Authorization is evaluated against the locked row's current state, before
// transition validity, so an order already claimed by another agent fails
// with Unauthorized rather than InvalidTransition.
func (h UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	actor := order.Actor{ID: cmd.ActorID(), Role: cmd.ActorRole()}
	now := time.Now().UTC()

	if err = aggregate.ChangeStatus(actor, cmd.Target(), now); err != nil {
		return err
	}

	if cmd.AgentID() != nil {
		if err = aggregate.AssignAgent(*cmd.AgentID(), now); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notify(ctx, aggregate)
	return nil
}

// notify fans the committed status change out to everyone watching the order.
func (h UpdateOrderStatusCommandHandler) notify(ctx context.Context, aggregate *order.Order) {
	update := ports.OrderUpdateEvent{
		Type:      ports.EventOrderUpdate,
		OrderID:   aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		UpdatedAt: aggregate.UpdatedAt().Format(time.RFC3339),
	}

	h.notifier.NotifyUser(aggregate.CustomerID(), aggregate.ID(), update)
	h.notifier.NotifyUser(aggregate.RestaurantID(), aggregate.ID(), update)
	if agent := aggregate.DeliveryAgent(); agent != nil {
		h.notifier.NotifyUser(*agent, aggregate.ID(), update)
	}

	if aggregate.Status() == order.AssignedToDelivery && aggregate.DeliveryAgent() == nil {
		h.notifier.BroadcastToDeliveryAgents(ctx, ports.OrderAvailableEvent{
			Type:         ports.EventOrderAvailable,
			OrderID:      aggregate.ID().String(),
			RestaurantID: aggregate.RestaurantID().String(),
			CreatedAt:    aggregate.CreatedAt().Format(time.RFC3339),
		})
	}
}
