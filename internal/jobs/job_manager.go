package jobs

import (
	"fmt"
	"log/slog"

	"laundry/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	overdueSweepJob *OverdueSweepJob
	staleIssueJob   *StaleIssueReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	tenants ports.TenantProvider,
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		overdueSweepJob: NewOverdueSweepJob(tenants, uowFactory, publisher, logger),
		staleIssueJob:   NewStaleIssueReminderJob(tenants, uowFactory, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue sweep job: %w", err)
	}

	if err := jm.staleIssueJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.overdueSweepJob.Stop()
		return fmt.Errorf("failed to start stale issue reminder: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueSweepJob.Stop()
	jm.staleIssueJob.Stop()
}
