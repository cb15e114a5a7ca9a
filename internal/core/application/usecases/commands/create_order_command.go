package commands

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired  = errors.New("at least one item is required for detailed intake")
	ErrQuickDropWithItems     = errors.New("quick-drop intake does not accept itemized lines")
	ErrBagQuantityIsInvalid   = errors.New("bag quantity must be greater than 0")
	ErrItemQuantityIsInvalid  = errors.New("item quantity must be greater than 0")
	ErrItemUnitPriceIsInvalid = errors.New("item unit price must not be negative")
)

// CreateOrderItem is one intake line of a new order.
type CreateOrderItem struct {
	ProductID      kernel.UUID
	Quantity       int
	UnitPriceCents int64
	TrackPieces    bool
}

// CreateOrderCommand represents a request to register a new order at intake.
// Supports two modes: detailed intake with itemized lines, and quick-drop
// intake where only a bag quantity is captured up front.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customerID      kernel.UUID
	serviceCategory string
	priority        order.Priority
	items           []CreateOrderItem
	quickDrop       bool
	bagQuantity     int
	turnaroundHours float64
	readyByOverride *time.Time
	receivedAt      time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// receivedAt may be zero; the handler then stamps the current time.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	serviceCategory string,
	priority order.Priority,
	items []CreateOrderItem,
	quickDrop bool,
	bagQuantity int,
	turnaroundHours float64,
	readyByOverride *time.Time,
	receivedAt time.Time,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setPriority(priority),
		cmd.setIntakeMode(items, quickDrop, bagQuantity),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.serviceCategory = serviceCategory
	cmd.turnaroundHours = turnaroundHours
	cmd.readyByOverride = readyByOverride
	cmd.receivedAt = receivedAt
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the owning customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// ServiceCategory returns the service category code, or "" for the default.
func (c CreateOrderCommand) ServiceCategory() string {
	return c.serviceCategory
}

// Priority returns the turnaround priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// Items returns the intake lines. Empty for quick-drop orders.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

// IsQuickDrop reports whether intake defers item capture.
func (c CreateOrderCommand) IsQuickDrop() bool {
	return c.quickDrop
}

// BagQuantity returns the quick-drop bag count.
func (c CreateOrderCommand) BagQuantity() int {
	return c.bagQuantity
}

// TurnaroundHours returns the base turnaround for the ready-by calculation.
func (c CreateOrderCommand) TurnaroundHours() float64 {
	return c.turnaroundHours
}

// ReadyByOverride returns the explicit ready-by, or nil for a calculated one.
func (c CreateOrderCommand) ReadyByOverride() *time.Time {
	return c.readyByOverride
}

// ReceivedAt returns the intake timestamp, zero when the handler should
// stamp the current time.
func (c CreateOrderCommand) ReceivedAt() time.Time {
	return c.receivedAt
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setIntakeMode(items []CreateOrderItem, quickDrop bool, bagQuantity int) error {
	if quickDrop {
		if len(items) > 0 {
			return ErrQuickDropWithItems
		}
		if bagQuantity <= 0 {
			return ErrBagQuantityIsInvalid
		}
		c.quickDrop = true
		c.bagQuantity = bagQuantity
		return nil
	}

	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}
	for n, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", n, err)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d]: %w", n, ErrItemQuantityIsInvalid)
		}
		if item.UnitPriceCents < 0 {
			return fmt.Errorf("items[%d]: %w", n, ErrItemUnitPriceIsInvalid)
		}
	}

	c.items = items
	return nil
}
