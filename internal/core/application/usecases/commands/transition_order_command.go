package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
	ErrToStatusIsRequired = errors.New("target status is required")
)

// TransitionOrderCommand represents a request to move an order to another
// status of the tenant's workflow.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	toStatus string
	notes    string
	metadata map[string]string

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a transition request. Notes and metadata
// are optional and land in the order's status history entry.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	toStatus string,
	notes string,
	metadata map[string]string,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setToStatus(toStatus),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd.notes = notes
	cmd.metadata = metadata
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ToStatus returns the target status code.
func (c TransitionOrderCommand) ToStatus() string {
	return c.toStatus
}

// Notes returns the optional operator notes.
func (c TransitionOrderCommand) Notes() string {
	return c.notes
}

// Metadata returns the optional history metadata.
func (c TransitionOrderCommand) Metadata() map[string]string {
	return c.metadata
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setToStatus(toStatus string) error {
	if toStatus == "" {
		return ErrToStatusIsRequired
	}

	c.toStatus = toStatus
	return nil
}
