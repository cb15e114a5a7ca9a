package commands

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/core/ports"
	"laundry/internal/pkg/tenantctx"
)

// SplitOrderCommandHandler divides an order into child orders within one
// transaction: the parent update and every child insert commit together or
// not at all, so item and piece totals are conserved across the split.
type SplitOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	splitter   services.OrderSplitter
}

// NewSplitOrderCommandHandler creates a handler for order splits.
func NewSplitOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) SplitOrderCommandHandler {
	return SplitOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		splitter:   services.NewOrderSplitter(),
	}
}

// Handle processes the split command and returns the created child order IDs,
// one per split spec. Child order numbers derive from the parent's number with a
// 1-based -S suffix that continues past children created by earlier splits.
// One split event per child is published after the transaction commits.
func (h *SplitOrderCommandHandler) Handle(ctx context.Context, cmd SplitOrderCommand) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	actor, err := tenantctx.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	parent, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	existing, err := orderRepo.CountChildren(ctx, parent.ID())
	if err != nil {
		return nil, err
	}

	children, err := h.splitter.Split(parent, cmd.Specs(), actor.UserID, now, cmd.Reason(),
		func(n int) string { return childOrderNumber(parent.OrderNumber(), existing+n) })
	if err != nil {
		return nil, err
	}

	for _, child := range children {
		if addErr := orderRepo.Add(ctx, child); addErr != nil {
			return nil, addErr
		}
	}
	if err = orderRepo.Update(ctx, parent); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	childIDs := make([]kernel.UUID, 0, len(children))
	// Fire-and-forget: the publisher handles its own failures.
	for _, child := range children {
		childIDs = append(childIDs, child.ID())
		_ = h.publisher.Publish(ctx, ports.OrderEvent{
			Kind:       ports.EventOrderSplit,
			Tenant:     actor.Tenant.String(),
			OrderID:    child.ID().String(),
			Number:     child.OrderNumber(),
			OccurredAt: now,
		})
	}

	return childIDs, nil
}
