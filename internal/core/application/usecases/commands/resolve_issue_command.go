package commands

import (
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var ErrResolveIssueCommandIsNotConstructed = errors.New(
	"ResolveIssueCommand must be created via NewResolveIssueCommand constructor",
)

// ResolveIssueCommand represents a request to resolve a flagged issue.
// Resolution succeeds exactly once; a second attempt is rejected.
type ResolveIssueCommand struct { //nolint:recvcheck //using for validation
	issueID kernel.UUID
	notes   string

	guard guard.ConstructorGuard
}

// NewResolveIssueCommand creates a resolution request. Notes are optional.
func NewResolveIssueCommand(issueID kernel.UUID, notes string) (ResolveIssueCommand, error) {
	cmd := ResolveIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setIssueID(issueID); err != nil {
		return ResolveIssueCommand{}, err
	}

	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIssueCommand) Validate() error {
	return c.guard.Validate(ErrResolveIssueCommandIsNotConstructed)
}

// IssueID returns the issue to resolve.
func (c ResolveIssueCommand) IssueID() kernel.UUID {
	return c.issueID
}

// Notes returns the optional resolution notes.
func (c ResolveIssueCommand) Notes() string {
	return c.notes
}

func (c *ResolveIssueCommand) setIssueID(issueID kernel.UUID) error {
	if err := issueID.Validate(); err != nil {
		return err
	}

	c.issueID = issueID
	return nil
}
