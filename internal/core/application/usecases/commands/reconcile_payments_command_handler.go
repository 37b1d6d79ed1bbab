package commands

import (
	"context"
	"errors"
	"time"

	"fooddelivery/internal/core/domain/services"
)

// ErrNoUnpaidOrdersFound signals that the sweep had nothing to settle.
// This is an expected outcome, not a failure.
var ErrNoUnpaidOrdersFound = errors.New("no unpaid orders found")

// ReconcilePaymentsCommandHandler settles orders whose payment was never
// persisted. All missing payments are created within a single transaction.
type ReconcilePaymentsCommandHandler struct {
	uowFactory PaymentUoWFactory
	settlement services.SettlementService
}

// NewReconcilePaymentsCommandHandler creates a handler for the settlement sweep.
func NewReconcilePaymentsCommandHandler(uowFactory PaymentUoWFactory, settlement services.SettlementService) ReconcilePaymentsCommandHandler {
	return ReconcilePaymentsCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
	}
}

// Handle processes the reconciliation command.
// Returns ErrNoUnpaidOrdersFound when every order is already settled.
func (h ReconcilePaymentsCommandHandler) Handle(ctx context.Context, cmd ReconcilePaymentsCommand) error {
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

	unpaid, err := uow.OrderRepository().GetAllWithoutPayment(ctx)
	if err != nil {
		return err
	}
	if len(unpaid) == 0 {
		return ErrNoUnpaidOrdersFound
	}

	paymentRepo := uow.PaymentRepository()
	now := time.Now().UTC()
	for _, aggregate := range unpaid {
		pay, err := h.settlement.Settle(aggregate.ID(), aggregate.TotalAmount(), now)
		if err != nil {
			return err
		}
		if err = paymentRepo.Add(ctx, pay); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
