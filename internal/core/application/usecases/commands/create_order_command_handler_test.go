package commands_test

import (
	"log/slog"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/menu"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRestaurant(t *testing.T) *user.User {
	t.Helper()
	restaurant, err := user.NewUser(kernel.NewUUID(), "bistro", "bistro@example.com", user.RoleRestaurant, "hash")
	require.NoError(t, err)
	return restaurant
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	restaurant := newRestaurant(t)
	customerID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	burger, err := menu.NewMenuItem(kernel.NewUUID(), restaurant.ID(), "Burger", "classic", 10.00, true)
	require.NoError(t, err)

	line, err := order.NewLineItem(burger.ID(), 2)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(orderID, customerID, restaurant.ID(), []order.LineItem{line})
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	menuRepo := new(MockMenuItemRepository)
	orderRepo := new(MockOrderRepository)
	payRepo := new(MockPaymentRepository)
	orderUoW := new(MockUoW)
	payUoW := new(MockUoW)
	notifier := new(MockNotifier)
	factory := new(MockPlaceOrderUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(orderUoW).Once(),
		orderUoW.On("Begin", ctx).Return(nil).Once(),
		orderUoW.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, restaurant.ID()).Return(restaurant, nil).Once(),
		orderUoW.On("MenuItemRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", mock.Anything, burger.ID()).Return(burger, nil).Once(),
		orderUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.Status() == order.Placed && o.TotalAmount() == 20.00
		})).Return(nil).Once(),
		orderUoW.On("Commit", ctx).Return(nil).Once(),
		factory.On("Create").Return(payUoW).Once(),
		payUoW.On("Begin", ctx).Return(nil).Once(),
		payUoW.On("PaymentRepository").Return(payRepo).Once(),
		payRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.OrderID().IsEqual(orderID) &&
				p.Amount() == 20.00 && p.RestaurantShare() == 16.00 && p.DeliveryFee() == 4.00
		})).Return(nil).Once(),
		payUoW.On("Commit", ctx).Return(nil).Once(),
		payUoW.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("NotifyRestaurantAll", restaurant.ID(), mock.MatchedBy(func(ev ports.NewOrderEvent) bool {
			return ev.Type == ports.EventNewOrder && ev.OrderID == orderID.String() && ev.TotalAmount == 20.00
		})).Once(),
		orderUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, services.NewSettlementService(), notifier, slog.Default())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
	menuRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	payRepo.AssertExpectations(t)
	orderUoW.AssertExpectations(t)
	payUoW.AssertExpectations(t)
	notifier.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RestaurantNotFound(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	line, err := order.NewLineItem(kernel.NewUUID(), 1)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), restaurantID, []order.LineItem{line})
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, restaurantID).
			Return(nil, errs.NewObjectNotFoundError("restaurant_id", restaurantID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	h := commands.NewCreateOrderCommandHandler(factory, services.NewSettlementService(), notifier, slog.Default())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	notifier.AssertNotCalled(t, "NotifyRestaurantAll", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_TargetIsNotARestaurant(t *testing.T) {
	ctx := t.Context()
	customer, err := user.NewUser(kernel.NewUUID(), "bob", "bob@example.com", user.RoleCustomer, "hash")
	require.NoError(t, err)

	line, err := order.NewLineItem(kernel.NewUUID(), 1)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), customer.ID(), []order.LineItem{line})
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, customer.ID()).Return(customer, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewSettlementService(), new(MockNotifier), slog.Default())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCreateOrderCommandHandler_Handle_ForeignMenuItem(t *testing.T) {
	ctx := t.Context()
	restaurant := newRestaurant(t)

	foreignItem, err := menu.NewMenuItem(kernel.NewUUID(), kernel.NewUUID(), "Sushi", "", 12.00, true)
	require.NoError(t, err)

	line, err := order.NewLineItem(foreignItem.ID(), 1)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), restaurant.ID(), []order.LineItem{line})
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	menuRepo := new(MockMenuItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, restaurant.ID()).Return(restaurant, nil).Once(),
		uow.On("MenuItemRepository").Return(menuRepo).Once(),
		menuRepo.On("Get", mock.Anything, foreignItem.ID()).Return(foreignItem, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewSettlementService(), new(MockNotifier), slog.Default())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommandHandler_Handle_PaymentFailureKeepsOrder(t *testing.T) {
	ctx := t.Context()
	restaurant := newRestaurant(t)

	burger, err := menu.NewMenuItem(kernel.NewUUID(), restaurant.ID(), "Burger", "", 10.00, true)
	require.NoError(t, err)

	line, err := order.NewLineItem(burger.ID(), 2)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), restaurant.ID(), []order.LineItem{line})
	require.NoError(t, err)

	userRepo := new(MockUserRepository)
	menuRepo := new(MockMenuItemRepository)
	orderRepo := new(MockOrderRepository)
	orderUoW := new(MockUoW)
	payUoW := new(MockUoW)
	notifier := new(MockNotifier)
	factory := new(MockPlaceOrderUoWFactory)

	userRepo.On("Get", mock.Anything, restaurant.ID()).Return(restaurant, nil).Once()
	menuRepo.On("Get", mock.Anything, burger.ID()).Return(burger, nil).Once()
	orderRepo.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	orderUoW.On("Begin", ctx).Return(nil).Once()
	orderUoW.On("UserRepository").Return(userRepo).Once()
	orderUoW.On("MenuItemRepository").Return(menuRepo).Once()
	orderUoW.On("OrderRepository").Return(orderRepo).Once()
	orderUoW.On("Commit", ctx).Return(nil).Once()
	orderUoW.On("Rollback", ctx).Return(nil).Once()
	payUoW.On("Begin", ctx).Return(assert.AnError).Once()
	factory.On("Create").Return(orderUoW).Once()
	factory.On("Create").Return(payUoW).Once()
	notifier.On("NotifyRestaurantAll", restaurant.ID(), mock.Anything).Once()

	h := commands.NewCreateOrderCommandHandler(factory, services.NewSettlementService(), notifier, slog.Default())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
	orderUoW.AssertExpectations(t)
}
