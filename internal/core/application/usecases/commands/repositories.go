// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// and persistence. The acting user and tenant always come from the request
// context, never from command fields.
package commands

import (
	"context"

	"laundry/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// WorkflowRepoFactory provides access to the workflow repository within a transaction.
	WorkflowRepoFactory interface {
		WorkflowRepository() ports.WorkflowRepository
	}

	// IssueRepoFactory provides access to the issue repository within a transaction.
	IssueRepoFactory interface {
		IssueRepository() ports.IssueRepository
	}

	// OrderUoW manages transactions for operations that touch orders and read
	// the tenant's workflow configuration.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		WorkflowRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// IssueUoW manages transactions for issue operations. Issue state feeds
	// the order's has-issue flag, so the order repository rides along.
	IssueUoW interface {
		TxManager
		IssueRepoFactory
		OrderRepoFactory
	}

	// IssueUoWFactory creates new issue unit of work instances.
	IssueUoWFactory interface {
		Create() IssueUoW
	}

	// WorkflowUoW manages transactions for workflow configuration changes.
	WorkflowUoW interface {
		TxManager
		WorkflowRepoFactory
	}

	// WorkflowUoWFactory creates new workflow unit of work instances.
	WorkflowUoWFactory interface {
		Create() WorkflowUoW
	}

	// UoW manages transactions across order, workflow, and issue aggregates.
	// Used by the transition handler, which loads the workflow, evaluates
	// gates against committed issue state, and updates the order atomically.
	UoW interface {
		TxManager
		OrderRepoFactory
		WorkflowRepoFactory
		IssueRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
