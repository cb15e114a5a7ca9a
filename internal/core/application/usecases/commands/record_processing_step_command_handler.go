package commands

import (
	"context"
	"time"

	"laundry/internal/pkg/tenantctx"
)

// RecordProcessingStepCommandHandler logs processing steps against order
// items. The step log is the input the all-items-processed gate reads.
type RecordProcessingStepCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordProcessingStepCommandHandler creates a handler for step logging.
func NewRecordProcessingStepCommandHandler(uowFactory OrderUoWFactory) RecordProcessingStepCommandHandler {
	return RecordProcessingStepCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the step-logging command under the order's optimistic
// version check.
func (h *RecordProcessingStepCommandHandler) Handle(ctx context.Context, cmd RecordProcessingStepCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor, err := tenantctx.FromContext(ctx)
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	item, err := aggregate.Item(cmd.OrderItemID())
	if err != nil {
		return err
	}
	if err = item.RecordStep(cmd.StepCode(), actor.UserID, time.Now().UTC(), cmd.Notes()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
