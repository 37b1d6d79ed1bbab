package commands

import (
	"errors"

	"fooddelivery/internal/pkg/guard"
)

// ReconcilePaymentsCommand triggers settlement of every order left without a
// payment. Order placement does not roll back when its synchronous
// settlement fails, so this batch operation is what eventually converges
// the books.
//
// Example:
//
//	cmd := NewReconcilePaymentsCommand()
//	handler := NewReconcilePaymentsCommandHandler(uowFactory, settlement)
//
//	// Run periodically to settle stragglers
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reconciliation failed: %v", err)
//	}
type ReconcilePaymentsCommand struct {
	guard guard.ConstructorGuard
}

var ErrReconcilePaymentsCommandIsNotConstructed = errors.New(
	"ReconcilePaymentsCommand must be created via NewReconcilePaymentsCommand constructor",
)

// NewReconcilePaymentsCommand creates a command to trigger the settlement sweep.
// This is a parameterless command that processes all unpaid orders.
func NewReconcilePaymentsCommand() ReconcilePaymentsCommand {
	command := ReconcilePaymentsCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcilePaymentsCommandIsNotConstructed if validation fails.
func (c *ReconcilePaymentsCommand) Validate() error {
	return c.guard.Validate(ErrReconcilePaymentsCommandIsNotConstructed)
}
