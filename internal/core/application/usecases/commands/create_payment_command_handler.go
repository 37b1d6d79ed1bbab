package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"
)

// CreatePaymentCommandHandler handles the business logic for settling an
// order's payment on demand. Used when the synchronous settlement at order
// placement did not go through.
type CreatePaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	settlement services.SettlementService
}

// NewCreatePaymentCommandHandler creates a handler for payment settlement operations.
func NewCreatePaymentCommandHandler(uowFactory PaymentUoWFactory, settlement services.SettlementService) CreatePaymentCommandHandler {
	return CreatePaymentCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
	}
}

// Handle processes the payment settlement command.
// Customers may only settle their own orders; admins may settle any order.
// An already-settled order is not an error.
func (h CreatePaymentCommandHandler) Handle(ctx context.Context, cmd CreatePaymentCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch cmd.ActorRole() {
	case user.RoleAdmin:
	case user.RoleCustomer:
		if !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
			return errs.NewUnauthorizedError("pay for another customer's order")
		}
	default:
		return errs.NewUnauthorizedError("pay for order")
	}

	paymentRepo := uow.PaymentRepository()

	_, err = paymentRepo.GetByOrderID(ctx, cmd.OrderID())
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	pay, err := h.settlement.Settle(aggregate.ID(), aggregate.TotalAmount(), time.Now().UTC())
	if err != nil {
		return err
	}

	if err = paymentRepo.Add(ctx, pay); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
