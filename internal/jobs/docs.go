// Package jobs provides scheduled background tasks for the food delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order backend.
//
// # Available Jobs
//
// 1. PaymentReconciliationJob - Runs every minute to settle orders whose payment was lost
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcilePaymentsHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reconciliation job treats an empty backlog (no unpaid orders) as the
// normal case and only logs unexpected failures. Order placement commits
// before its payment settles, so a crash between the two leaves an unpaid
// order for the next sweep to pick up.
package jobs
