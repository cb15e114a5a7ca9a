package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"
)

// CreateIssueCommandHandler flags a quality issue against an order item and
// refreshes the order's has-issue flag in the same transaction.
type CreateIssueCommandHandler struct {
	uowFactory IssueUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateIssueCommandHandler creates a handler for issue flagging.
func NewCreateIssueCommandHandler(uowFactory IssueUoWFactory, publisher ports.EventPublisher) CreateIssueCommandHandler {
	return CreateIssueCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the issue creation command. The order is loaded first so a
// foreign or nonexistent order fails before anything is written, and the item
// reference is checked against the loaded aggregate.
func (h *CreateIssueCommandHandler) Handle(ctx context.Context, cmd CreateIssueCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if _, err = aggregate.Item(cmd.OrderItemID()); err != nil {
		return err
	}

	flagged, err := issue.NewIssue(cmd.OrderID(), cmd.OrderItemID(), cmd.Code(),
		cmd.Text(), cmd.Priority(), cmd.PhotoRef(), actor.UserID, now)
	if err != nil {
		return err
	}

	issueRepo := uow.IssueRepository()
	if err = issueRepo.Add(ctx, flagged); err != nil {
		return err
	}

	count, err := issueRepo.CountUnresolvedByOrder(ctx, cmd.OrderID())
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
		Kind:       ports.EventIssueCreated,
		Tenant:     actor.Tenant.String(),
		OrderID:    cmd.OrderID().String(),
		IssueID:    flagged.ID().String(),
		OccurredAt: now,
	})

	return nil
}
