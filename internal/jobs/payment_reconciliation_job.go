package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentReconciliationJob periodically settles orders whose payment
// was lost after the order itself committed. Order placement and
// settlement run in separate transactions, so a crash between the two
// leaves an order without a payment; this sweep converges them.
type PaymentReconciliationJob struct {
	handler commands.ReconcilePaymentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPaymentReconciliationJob creates the reconciliation sweep.
func NewPaymentReconciliationJob(handler commands.ReconcilePaymentsCommandHandler, logger *slog.Logger) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "payment_reconciliation_job"),
	}
}

// Start schedules the sweep to run every minute.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc("@every 1m", func() {
		ctx := context.Background()
		cmd := commands.NewReconcilePaymentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty backlog is the normal case, not a failure.
			if !errors.Is(err, commands.ErrNoUnpaidOrdersFound) {
				j.logger.ErrorContext(ctx, "Payment reconciliation job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation sweep.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}
