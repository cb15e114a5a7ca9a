package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var (
	ErrUpdatePiecesCommandIsNotConstructed = errors.New(
		"UpdatePiecesCommand must be created via NewUpdatePiecesCommand constructor",
	)
	ErrPieceUpdatesAreRequired = errors.New("at least one piece update is required")
	ErrPieceBatchIsTooLarge    = fmt.Errorf(
		"piece update batch exceeds %d entries", order.MaxPieceBatchSize,
	)
)

// UpdatePiecesCommand represents a batch update of pieces under one order
// item: barcode scans, status changes, rack locations, rejection flags.
type UpdatePiecesCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	orderItemID kernel.UUID
	updates     []order.PieceUpdate

	guard guard.ConstructorGuard
}

// NewUpdatePiecesCommand creates a batch piece update. Batch size limits are
// checked here; per-piece validation happens against the loaded aggregate.
func NewUpdatePiecesCommand(
	orderID, orderItemID kernel.UUID,
	updates []order.PieceUpdate,
) (UpdatePiecesCommand, error) {
	cmd := UpdatePiecesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderItemID(orderItemID),
		cmd.setUpdates(updates),
	); err != nil {
		return UpdatePiecesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePiecesCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePiecesCommandIsNotConstructed)
}

// OrderID returns the owning order.
func (c UpdatePiecesCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderItemID returns the item whose pieces are updated.
func (c UpdatePiecesCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// Updates returns the per-piece updates.
func (c UpdatePiecesCommand) Updates() []order.PieceUpdate {
	return c.updates
}

func (c *UpdatePiecesCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdatePiecesCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}

func (c *UpdatePiecesCommand) setUpdates(updates []order.PieceUpdate) error {
	if len(updates) == 0 {
		return ErrPieceUpdatesAreRequired
	}
	if len(updates) > order.MaxPieceBatchSize {
		return ErrPieceBatchIsTooLarge
	}

	c.updates = updates
	return nil
}
