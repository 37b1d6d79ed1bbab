package commands_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	line, err := order.NewLineItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.LineItem{line}, 20.00, time.Now().UTC())
	require.NoError(t, err)
	return o
}

func orderInStatus(t *testing.T, status order.Status, agentID *kernel.UUID) *order.Order {
	t.Helper()
	line, err := order.NewLineItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		agentID, []order.LineItem{line}, 20.00, status, now, now,
	)
	require.NoError(t, err)
	return o
}

func TestUpdateOrderStatusCommandHandler_Handle_RestaurantAccepts(t *testing.T) {
	ctx := t.Context()
	aggregate := placedOrder(t)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), aggregate.RestaurantID(), user.RoleRestaurant, order.Accepted, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Accepted
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("NotifyUser", aggregate.CustomerID(), aggregate.ID(), mock.MatchedBy(func(ev ports.OrderUpdateEvent) bool {
			return ev.Type == ports.EventOrderUpdate && ev.Status == "accepted"
		})).Once(),
		notifier.On("NotifyUser", aggregate.RestaurantID(), aggregate.ID(), mock.Anything).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	notifier.AssertNotCalled(t, "BroadcastToDeliveryAgents", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_UnassignedDispatchBroadcasts(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInStatus(t, order.Accepted, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), aggregate.RestaurantID(), user.RoleRestaurant, order.AssignedToDelivery, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	notifier.On("NotifyUser", mock.Anything, mock.Anything, mock.Anything).Twice()
	notifier.On("BroadcastToDeliveryAgents", mock.Anything, mock.MatchedBy(func(ev ports.OrderAvailableEvent) bool {
		return ev.Type == ports.EventOrderAvailable && ev.OrderID == aggregate.ID().String()
	})).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_ExplicitAgentSkipsBroadcast(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInStatus(t, order.Accepted, nil)
	agentID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), aggregate.RestaurantID(), user.RoleRestaurant, order.AssignedToDelivery, &agentID)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.DeliveryAgent() != nil && o.DeliveryAgent().IsEqual(agentID)
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	notifier.On("NotifyUser", mock.Anything, mock.Anything, mock.Anything).Times(3)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
	notifier.AssertNotCalled(t, "BroadcastToDeliveryAgents", mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_AgentClaims(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInStatus(t, order.AssignedToDelivery, nil)
	agentID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), agentID, user.RoleDeliveryAgent, order.PickedUp, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.PickedUp && o.DeliveryAgent() != nil && o.DeliveryAgent().IsEqual(agentID)
	})).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	notifier.On("NotifyUser", mock.Anything, mock.Anything, mock.Anything).Times(3)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateOrderStatusCommandHandler_Handle_SecondClaimantLoses(t *testing.T) {
	ctx := t.Context()
	winner := kernel.NewUUID()
	aggregate := orderInStatus(t, order.AssignedToDelivery, &winner)
	loser := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), loser, user.RoleDeliveryAgent, order.PickedUp, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, notifier)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "NotifyUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateOrderStatusCommandHandler_Handle_SkippedTransition(t *testing.T) {
	ctx := t.Context()
	aggregate := orderInStatus(t, order.Accepted, nil)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), kernel.NewUUID(), user.RoleAdmin, order.PickedUp, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestUpdateOrderStatusCommandHandler_Handle_CustomerIsRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := placedOrder(t)
	cmd, err := commands.NewUpdateOrderStatusCommand(aggregate.ID(), aggregate.CustomerID(), user.RoleCustomer, order.Accepted, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestUpdateOrderStatusCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, kernel.NewUUID(), user.RoleAdmin, order.Accepted, nil)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", mock.Anything, orderID).
		Return(nil, errs.NewObjectNotFoundError("order_id", orderID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderStatusCommandHandler(factory, new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
