package commands

import (
	"context"
	"errors"
	"time"

	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/tenantctx"
)

// maxTransitionAttempts bounds the optimistic-concurrency retry loop. Each
// attempt re-reads the order, so a retry re-validates the transition against
// the winner's committed state.
const maxTransitionAttempts = 3

// TransitionOrderResult summarizes the order as committed by a successful
// transition. Version reflects the stored row, one past the version the
// aggregate was loaded with.
type TransitionOrderResult struct {
	OrderID string
	Status  string
	Stage   string
	Version int
	ReadyBy *time.Time
}

// TransitionOrderCommandHandler executes order status transitions: it checks
// the workflow edge, evaluates the edge's quality gates against committed
// state, and persists the new status under an optimistic version check.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewTransitionOrderCommandHandler creates a handler for status transitions.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition command and returns the committed order
// summary. A lost optimistic-concurrency race rolls back and retries on a
// fresh read; any other failure is returned as is. The transitioned event is
// published only after a successful commit.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (TransitionOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderResult{}, err
	}
	actor, err := tenantctx.FromContext(ctx)
	if err != nil {
		return TransitionOrderResult{}, err
	}

	var lastErr error
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		result, fromStatus, err := h.attempt(ctx, cmd, actor.UserID)
		if err == nil {
			// Fire-and-forget: the publisher handles its own failures.
			_ = h.publisher.Publish(ctx, ports.OrderEvent{
				Kind:       ports.EventOrderTransitioned,
				Tenant:     actor.Tenant.String(),
				OrderID:    cmd.OrderID().String(),
				FromStatus: fromStatus,
				ToStatus:   cmd.ToStatus(),
				OccurredAt: time.Now().UTC(),
			})
			return result, nil
		}

		var concurrentErr *errs.ConcurrentModificationError
		if !errors.As(err, &concurrentErr) {
			return TransitionOrderResult{}, err
		}
		lastErr = err
	}

	return TransitionOrderResult{}, lastErr
}

func (h *TransitionOrderCommandHandler) attempt(ctx context.Context, cmd TransitionOrderCommand, userID string) (TransitionOrderResult, string, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionOrderResult{}, "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TransitionOrderResult{}, "", err
	}
	fromStatus := aggregate.Status()

	wf, err := uow.WorkflowRepository().Get(ctx, aggregate.ServiceCategory())
	if err != nil {
		return TransitionOrderResult{}, "", err
	}

	// The edge is checked before gates so an invalid transition is reported
	// as such even when a gate would also fail.
	if err = wf.CanTransition(fromStatus, cmd.ToStatus()); err != nil {
		return TransitionOrderResult{}, "", err
	}

	// An edge without gates never touches the issue store.
	if gates := wf.Gates(fromStatus, cmd.ToStatus()); len(gates) > 0 {
		evaluator := services.NewGateEvaluator(uow.IssueRepository())
		if err = evaluator.EvaluateAll(ctx, gates, aggregate); err != nil {
			return TransitionOrderResult{}, "", err
		}
	}

	if err = aggregate.TransitionTo(wf, cmd.ToStatus(), userID, time.Now().UTC(), cmd.Notes(), cmd.Metadata()); err != nil {
		return TransitionOrderResult{}, "", err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return TransitionOrderResult{}, "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOrderResult{}, "", err
	}

	// Update commits the row at the next version.
	result := TransitionOrderResult{
		OrderID: aggregate.ID().String(),
		Status:  aggregate.Status(),
		Stage:   string(aggregate.Stage()),
		Version: aggregate.Version() + 1,
		ReadyBy: aggregate.ReadyBy(),
	}
	return result, fromStatus, nil
}
