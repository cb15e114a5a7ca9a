package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var ErrRecordProcessingStepCommandIsNotConstructed = errors.New(
	"RecordProcessingStepCommand must be created via NewRecordProcessingStepCommand constructor",
)

// RecordProcessingStepCommand represents a request to log one processing step
// against an order item. Step sequences are strictly increasing per item.
type RecordProcessingStepCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	orderItemID kernel.UUID
	stepCode    order.StepCode
	notes       string

	guard guard.ConstructorGuard
}

// NewRecordProcessingStepCommand creates a step-logging request.
func NewRecordProcessingStepCommand(
	orderID, orderItemID kernel.UUID,
	stepCode order.StepCode,
	notes string,
) (RecordProcessingStepCommand, error) {
	cmd := RecordProcessingStepCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderItemID(orderItemID),
		cmd.setStepCode(stepCode),
	); err != nil {
		return RecordProcessingStepCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordProcessingStepCommand) Validate() error {
	return c.guard.Validate(ErrRecordProcessingStepCommandIsNotConstructed)
}

// OrderID returns the owning order.
func (c RecordProcessingStepCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderItemID returns the item the step is logged against.
func (c RecordProcessingStepCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// StepCode returns the processing step to record.
func (c RecordProcessingStepCommand) StepCode() order.StepCode {
	return c.stepCode
}

// Notes returns the optional operator notes.
func (c RecordProcessingStepCommand) Notes() string {
	return c.notes
}

func (c *RecordProcessingStepCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordProcessingStepCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}

func (c *RecordProcessingStepCommand) setStepCode(stepCode order.StepCode) error {
	if err := stepCode.Validate(); err != nil {
		return err
	}

	c.stepCode = stepCode
	return nil
}
