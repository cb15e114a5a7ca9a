package commands

import (
	"errors"

	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrCreateIssueCommandIsNotConstructed = errors.New(
		"CreateIssueCommand must be created via NewCreateIssueCommand constructor",
	)
	ErrIssueTextIsRequired = errors.New("issue text is required")
)

// CreateIssueCommand represents a request to flag a quality issue against one
// item of an order.
type CreateIssueCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	orderItemID kernel.UUID
	code        issue.Code
	text        string
	priority    issue.Priority
	photoRef    string

	guard guard.ConstructorGuard
}

// NewCreateIssueCommand creates an issue-flagging request. photoRef is an
// optional reference to an externally stored photo.
func NewCreateIssueCommand(
	orderID, orderItemID kernel.UUID,
	code issue.Code,
	text string,
	priority issue.Priority,
	photoRef string,
) (CreateIssueCommand, error) {
	cmd := CreateIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderItemID(orderItemID),
		cmd.setCode(code),
		cmd.setText(text),
		cmd.setPriority(priority),
	); err != nil {
		return CreateIssueCommand{}, err
	}

	cmd.photoRef = photoRef
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateIssueCommand) Validate() error {
	return c.guard.Validate(ErrCreateIssueCommandIsNotConstructed)
}

// OrderID returns the order the issue belongs to.
func (c CreateIssueCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OrderItemID returns the item the issue is flagged against.
func (c CreateIssueCommand) OrderItemID() kernel.UUID {
	return c.orderItemID
}

// Code returns the issue classification.
func (c CreateIssueCommand) Code() issue.Code {
	return c.code
}

// Text returns the issue description.
func (c CreateIssueCommand) Text() string {
	return c.text
}

// Priority returns the QA queue priority.
func (c CreateIssueCommand) Priority() issue.Priority {
	return c.priority
}

// PhotoRef returns the optional photo reference.
func (c CreateIssueCommand) PhotoRef() string {
	return c.photoRef
}

func (c *CreateIssueCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateIssueCommand) setOrderItemID(orderItemID kernel.UUID) error {
	if err := orderItemID.Validate(); err != nil {
		return err
	}

	c.orderItemID = orderItemID
	return nil
}

func (c *CreateIssueCommand) setCode(code issue.Code) error {
	if err := code.Validate(); err != nil {
		return err
	}

	c.code = code
	return nil
}

func (c *CreateIssueCommand) setText(text string) error {
	if text == "" {
		return ErrIssueTextIsRequired
	}

	c.text = text
	return nil
}

func (c *CreateIssueCommand) setPriority(priority issue.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	c.priority = priority
	return nil
}
