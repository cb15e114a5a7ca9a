package commands

import (
	"context"
	"time"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"
)

// ResolveIssueCommandHandler resolves a flagged issue and refreshes the
// owning order's has-issue flag in the same transaction.
type ResolveIssueCommandHandler struct {
	uowFactory IssueUoWFactory
	publisher  ports.EventPublisher
}

// NewResolveIssueCommandHandler creates a handler for issue resolution.
func NewResolveIssueCommandHandler(uowFactory IssueUoWFactory, publisher ports.EventPublisher) ResolveIssueCommandHandler {
	return ResolveIssueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the resolution command. An already resolved issue returns
// AlreadyResolved and leaves the first resolution untouched.
func (h *ResolveIssueCommandHandler) Handle(ctx context.Context, cmd ResolveIssueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	actor, err := tenantctx.FromContext(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	issueRepo := uow.IssueRepository()
	flagged, err := issueRepo.Get(ctx, cmd.IssueID())
	if err != nil {
		return err
	}

	if err = flagged.Resolve(actor.UserID, now, cmd.Notes()); err != nil {
		return err
	}
	if err = issueRepo.Update(ctx, flagged); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, flagged.OrderID())
	if err != nil {
		return err
	}
	count, err := issueRepo.CountUnresolvedByOrder(ctx, flagged.OrderID())
	if err != nil {
		return err
	}
	aggregate.RefreshIssueFlag(int(count))
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Fire-and-forget: the publisher handles its own failures.
	_ = h.publisher.Publish(ctx, ports.OrderEvent{
		Kind:       ports.EventIssueResolved,
		Tenant:     actor.Tenant.String(),
		OrderID:    flagged.OrderID().String(),
		IssueID:    flagged.ID().String(),
		OccurredAt: now,
	})

	return nil
}
