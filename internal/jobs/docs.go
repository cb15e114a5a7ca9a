// Package jobs provides scheduled background tasks for the laundry order
// lifecycle engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations across all tenants.
//
// # Available Jobs
//
// 1. OverdueSweepJob - Runs every minute to flag active orders past their
// ready-by time and announce them on the tenant's event channel
// 2. StaleIssueReminderJob - Runs hourly to flag issues unresolved for more
// than 24 hours, since those block the no-unresolved-issues gate
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(tenantProvider, uowFactory, publisher, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Tenant Handling
//
// Each job run fans out over the tenants known to storage and binds a system
// actor per tenant, so repository tenant scoping applies to sweeps exactly as
// it does to requests.
package jobs
