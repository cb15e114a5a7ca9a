package jobs

import (
	"context"
	"log/slog"
	"time"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"

	"github.com/robfig/cron/v3"
)

// jobActorID identifies the background sweeps in tenant bindings and logs.
const jobActorID = "system"

// OverdueSweepJob periodically scans every tenant for active orders whose
// ready-by time has passed. Each overdue order is logged and announced on the
// tenant's event channel so counter staff see it before the customer does.
type OverdueSweepJob struct {
	tenants    ports.TenantProvider
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOverdueSweepJob creates the overdue ready-by sweep.
func NewOverdueSweepJob(
	tenants ports.TenantProvider,
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OverdueSweepJob {
	return &OverdueSweepJob{
		tenants:    tenants,
		uowFactory: uowFactory,
		publisher:  publisher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "overdue_sweep_job"),
	}
}

// Start begins the sweep, running once a minute.
func (j *OverdueSweepJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue sweep job started (running every minute)")
	return nil
}

// Stop stops the sweep.
func (j *OverdueSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue sweep job stopped")
}

// sweep fans out over all known tenants. Each tenant is processed under its
// own binding, so the repository scoping holds for the sweep exactly as it
// does for requests.
func (j *OverdueSweepJob) sweep() {
	ctx := context.Background()
	now := time.Now().UTC()

	tenants, err := j.tenants.ListTenants(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue sweep could not list tenants", "error", err)
		return
	}

	for _, tenant := range tenants {
		tenantCtx := tenantctx.Bind(ctx, tenantctx.Actor{
			UserID: jobActorID,
			Tenant: tenant,
			Role:   jobActorID,
		})

		uow := j.uowFactory.Create()
		overdue, err := uow.OrderRepository().GetOverdue(tenantCtx, now)
		if err != nil {
			j.logger.ErrorContext(tenantCtx, "Overdue sweep failed for tenant",
				"tenant", tenant.String(), "error", err)
			continue
		}

		for _, o := range overdue {
			j.logger.WarnContext(tenantCtx, "Order is past its ready-by time",
				"tenant", tenant.String(),
				"order_number", o.OrderNumber(),
				"status", o.Status(),
				"ready_by", o.ReadyBy(),
			)
			_ = j.publisher.Publish(tenantCtx, ports.OrderEvent{
				Kind:       ports.EventOrderOverdue,
				Tenant:     tenant.String(),
				OrderID:    o.ID().String(),
				Number:     o.OrderNumber(),
				ToStatus:   o.Status(),
				OccurredAt: now,
			})
		}
	}
}
