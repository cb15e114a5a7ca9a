package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"

	"github.com/robfig/cron/v3"
)

// StaleIssueAge is how long an issue may stay unresolved before the reminder
// job flags it.
const StaleIssueAge = 24 * time.Hour

// StaleIssueReminderJob periodically flags unresolved issues that have been
// open longer than StaleIssueAge. Stale issues block the
// no-unresolved-issues gate, so an overlooked one quietly stalls its order.
type StaleIssueReminderJob struct {
	tenants    ports.TenantProvider
	uowFactory ports.UnitOfWorkFactory
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewStaleIssueReminderJob creates the stale issue reminder.
func NewStaleIssueReminderJob(
	tenants ports.TenantProvider,
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
) *StaleIssueReminderJob {
	return &StaleIssueReminderJob{
		tenants:    tenants,
		uowFactory: uowFactory,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "stale_issue_job"),
	}
}

// Start begins the reminder, running once an hour.
func (j *StaleIssueReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 0 * * * *", j.remind)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale issue reminder started (running hourly)")
	return nil
}

// Stop stops the reminder.
func (j *StaleIssueReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale issue reminder stopped")
}

func (j *StaleIssueReminderJob) remind() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-StaleIssueAge)

	tenants, err := j.tenants.ListTenants(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale issue reminder could not list tenants", "error", err)
		return
	}

	for _, tenant := range tenants {
		tenantCtx := tenantctx.Bind(ctx, tenantctx.Actor{
			UserID: jobActorID,
			Tenant: tenant,
			Role:   jobActorID,
		})

		uow := j.uowFactory.Create()
		stale, err := uow.IssueRepository().GetUnresolvedOlderThan(tenantCtx, cutoff)
		if err != nil {
			j.logger.ErrorContext(tenantCtx, "Stale issue reminder failed for tenant",
				"tenant", tenant.String(), "error", err)
			continue
		}

		for _, staleIssue := range stale {
			j.logger.WarnContext(tenantCtx, "Issue unresolved past reminder age",
				"tenant", tenant.String(),
				"issue_id", staleIssue.ID().String(),
				"order_id", staleIssue.OrderID().String(),
				"code", staleIssue.Code(),
				"created_at", staleIssue.CreatedAt(),
			)
		}
	}
}
