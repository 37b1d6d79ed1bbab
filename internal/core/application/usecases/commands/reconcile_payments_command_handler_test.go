package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/payment"
	"fooddelivery/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcilePaymentsCommandHandler_Handle_SettlesStragglers(t *testing.T) {
	ctx := t.Context()
	first := placedOrder(t)
	second := placedOrder(t)

	orderRepo := new(MockOrderRepository)
	payRepo := new(MockPaymentRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllWithoutPayment", mock.Anything).Return([]*order.Order{first, second}, nil).Once(),
		uow.On("PaymentRepository").Return(payRepo).Once(),
		payRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.OrderID().IsEqual(first.ID())
		})).Return(nil).Once(),
		payRepo.On("Add", mock.Anything, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.OrderID().IsEqual(second.ID())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentsCommandHandler(factory, services.NewSettlementService())
	err := h.Handle(ctx, commands.NewReconcilePaymentsCommand())
	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	payRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReconcilePaymentsCommandHandler_Handle_NothingToDo(t *testing.T) {
	ctx := t.Context()

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetAllWithoutPayment", mock.Anything).Return([]*order.Order{}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReconcilePaymentsCommandHandler(factory, services.NewSettlementService())
	err := h.Handle(ctx, commands.NewReconcilePaymentsCommand())
	require.ErrorIs(t, err, commands.ErrNoUnpaidOrdersFound)
}
