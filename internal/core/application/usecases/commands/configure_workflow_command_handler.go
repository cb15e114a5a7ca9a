package commands

import (
	"context"

	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/tenantctx"
)

// ConfigureWorkflowCommandHandler replaces the tenant's workflow
// configuration. In-flight orders keep their current status; only future
// transitions are evaluated against the new graph.
type ConfigureWorkflowCommandHandler struct {
	uowFactory WorkflowUoWFactory
}

// NewConfigureWorkflowCommandHandler creates a handler for workflow changes.
func NewConfigureWorkflowCommandHandler(uowFactory WorkflowUoWFactory) ConfigureWorkflowCommandHandler {
	return ConfigureWorkflowCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the submitted graph and stores it. NewWorkflow rejects
// unknown steps, self-loops, edges back into the initial step, and
// unreachable steps before anything is written.
func (h *ConfigureWorkflowCommandHandler) Handle(ctx context.Context, cmd ConfigureWorkflowCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	tenant, err := tenantctx.Tenant(ctx)
	if err != nil {
		return err
	}

	wf, err := workflow.NewWorkflow(tenant, cmd.ServiceCategory(), cmd.Steps(), cmd.Transitions(), cmd.Gates())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.WorkflowRepository().Save(ctx, wf); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
