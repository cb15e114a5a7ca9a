// Package issue contains the quality-issue entity attached to order items.
// Issues are created during processing, resolved exactly once, and feed the
// state machine's no-unresolved-issues gate.
package issue

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// Code classifies the quality exception.
type Code string

const (
	CodeDamage    Code = "damage"
	CodeStain     Code = "stain"
	CodeComplaint Code = "complaint"
	CodeOther     Code = "other"
)

// Validate checks the code belongs to the fixed set.
func (c Code) Validate() error {
	switch c {
	case CodeDamage, CodeStain, CodeComplaint, CodeOther:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("issueCode",
			fmt.Errorf("%q is not a valid issue code", string(c)))
	}
}

// Priority orders issues in the QA queue.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Validate checks the priority belongs to the fixed set.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("issuePriority",
			fmt.Errorf("%q is not a valid issue priority", string(p)))
	}
}

// ErrIssueIsNotConstructed is returned when an Issue was not created through
// NewIssue or RestoreIssue.
var ErrIssueIsNotConstructed = errors.New("Issue must be created via NewIssue constructor")

// Issue is an order item-scoped quality exception. Resolution metadata stays
// nil until Resolve, which succeeds exactly once.
type Issue struct {
	id          kernel.UUID
	orderID     kernel.UUID
	orderItemID kernel.UUID

	code     Code
	text     string
	priority Priority
	photoRef string

	createdBy string
	createdAt time.Time

	solvedAt    *time.Time
	solvedBy    string
	solvedNotes string

	isConstructed bool
}

// NewIssue creates an unresolved issue against an order item.
func NewIssue(
	orderID, orderItemID kernel.UUID,
	code Code,
	text string,
	priority Priority,
	photoRef string,
	createdBy string,
	createdAt time.Time,
) (*Issue, error) {
	if err := errors.Join(
		orderID.Validate(),
		orderItemID.Validate(),
		code.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, errs.NewValueIsRequiredError("issue text")
	}
	if createdBy == "" {
		return nil, errs.NewValueIsRequiredError("createdBy")
	}

	return &Issue{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		orderItemID:   orderItemID,
		code:          code,
		text:          text,
		priority:      priority,
		photoRef:      photoRef,
		createdBy:     createdBy,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreIssue rebuilds an issue from persistence.
func RestoreIssue(
	id, orderID, orderItemID kernel.UUID,
	code Code, text string, priority Priority, photoRef string,
	createdBy string, createdAt time.Time,
	solvedAt *time.Time, solvedBy, solvedNotes string,
) *Issue {
	return &Issue{
		id:            id,
		orderID:       orderID,
		orderItemID:   orderItemID,
		code:          code,
		text:          text,
		priority:      priority,
		photoRef:      photoRef,
		createdBy:     createdBy,
		createdAt:     createdAt,
		solvedAt:      solvedAt,
		solvedBy:      solvedBy,
		solvedNotes:   solvedNotes,
		isConstructed: true,
	}
}

// Validate ensures the issue was created through a constructor.
func (i *Issue) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrIssueIsNotConstructed
	}
	return nil
}

func (i *Issue) ID() kernel.UUID          { return i.id }
func (i *Issue) OrderID() kernel.UUID     { return i.orderID }
func (i *Issue) OrderItemID() kernel.UUID { return i.orderItemID }
func (i *Issue) Code() Code               { return i.code }
func (i *Issue) Text() string             { return i.text }
func (i *Issue) Priority() Priority       { return i.priority }
func (i *Issue) PhotoRef() string         { return i.photoRef }
func (i *Issue) CreatedBy() string        { return i.createdBy }
func (i *Issue) CreatedAt() time.Time     { return i.createdAt }
func (i *Issue) SolvedAt() *time.Time     { return i.solvedAt }
func (i *Issue) SolvedBy() string         { return i.solvedBy }
func (i *Issue) SolvedNotes() string      { return i.solvedNotes }

// IsResolved reports whether the issue has been resolved.
func (i *Issue) IsResolved() bool {
	return i.solvedAt != nil
}

// Resolve stamps the resolution metadata exactly once. A second resolution
// attempt returns AlreadyResolved and leaves the first resolution untouched.
func (i *Issue) Resolve(actor string, at time.Time, notes string) error {
	if i.IsResolved() {
		return errs.NewAlreadyResolvedError(i.id.String())
	}
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	i.solvedAt = &at
	i.solvedBy = actor
	i.solvedNotes = notes
	return nil
}
