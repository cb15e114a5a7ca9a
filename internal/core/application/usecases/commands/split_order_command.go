package commands

import (
	"errors"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/guard"
)

var (
	ErrSplitOrderCommandIsNotConstructed = errors.New(
		"SplitOrderCommand must be created via NewSplitOrderCommand constructor",
	)
	ErrSplitReasonIsTooShort = fmt.Errorf(
		"split reason must be at least %d characters", services.MinSplitReasonLength,
	)
	ErrSplitSpecsAreRequired = errors.New("at least one split spec is required")
)

// SplitOrderCommand represents a request to divide an order into child
// orders, each spec naming what moves onto one child.
type SplitOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	specs   []services.SplitSpec

	guard guard.ConstructorGuard
}

// NewSplitOrderCommand creates a split request. The reason is mandatory for
// the audit trail; per-spec contents are validated by the splitter against
// the loaded order.
func NewSplitOrderCommand(orderID kernel.UUID, reason string, specs []services.SplitSpec) (SplitOrderCommand, error) {
	cmd := SplitOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setSpecs(specs),
	); err != nil {
		return SplitOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SplitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSplitOrderCommandIsNotConstructed)
}

// OrderID returns the parent order to split.
func (c SplitOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns the audit reason recorded on parent and children.
func (c SplitOrderCommand) Reason() string {
	return c.reason
}

// Specs returns one entry per child order to create.
func (c SplitOrderCommand) Specs() []services.SplitSpec {
	return c.specs
}

func (c *SplitOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SplitOrderCommand) setReason(reason string) error {
	if len(reason) < services.MinSplitReasonLength {
		return ErrSplitReasonIsTooShort
	}

	c.reason = reason
	return nil
}

func (c *SplitOrderCommand) setSpecs(specs []services.SplitSpec) error {
	if len(specs) == 0 {
		return ErrSplitSpecsAreRequired
	}

	c.specs = specs
	return nil
}
