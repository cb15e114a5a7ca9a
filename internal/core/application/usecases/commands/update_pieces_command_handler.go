package commands

import (
	"context"

	"laundry/internal/pkg/tenantctx"
)

// UpdatePiecesCommandHandler applies batch piece updates. The whole batch is
// validated against the loaded item before any piece changes, and every
// validation failure in the batch is reported, not just the first.
type UpdatePiecesCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdatePiecesCommandHandler creates a handler for batch piece updates.
func NewUpdatePiecesCommandHandler(uowFactory OrderUoWFactory) UpdatePiecesCommandHandler {
	return UpdatePiecesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch update under the order's optimistic version
// check.
func (h *UpdatePiecesCommandHandler) Handle(ctx context.Context, cmd UpdatePiecesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if _, err := tenantctx.FromContext(ctx); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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
	if err = item.UpdatePieces(cmd.Updates()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
