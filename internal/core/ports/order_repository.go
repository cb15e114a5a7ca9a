// Package ports defines repository and outbound interfaces for the order
// lifecycle domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
// Every implementation is tenant-scoped: the tenant comes from the request
// context, never from caller-supplied parameters.
package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// All reads and writes are scoped to the tenant bound to the context.
type OrderRepository interface {
	// Add persists a new order aggregate with its items, pieces, steps,
	// and history. The order must be valid and not already exist.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using an
	// optimistic version check. When the stored version no longer matches
	// the aggregate's loaded version, Update returns a
	// ConcurrentModificationError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier within the
	// current tenant. An order belonging to another tenant yields the same
	// not-found error as a nonexistent one.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByNumber retrieves an order by its human-readable order number.
	GetByNumber(ctx context.Context, number string) (*order.Order, error)

	// GetAllActive retrieves the tenant's orders in non-terminal statuses,
	// ordered by ready-by ascending with nil ready-by last.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetOverdue retrieves active orders whose ready-by timestamp has
	// already passed at the given instant.
	GetOverdue(ctx context.Context, now time.Time) ([]*order.Order, error)

	// CountChildren counts the orders split off the given parent. Split
	// numbering continues past children created by earlier splits, so this
	// must be called inside the same transaction as the Adds that follow.
	CountChildren(ctx context.Context, parentID kernel.UUID) (int, error)

	// NextNumberSequence reserves and returns the next per-day order number
	// sequence for the tenant. Must be called inside the same transaction
	// as the Add that consumes it.
	NextNumberSequence(ctx context.Context, day time.Time) (int, error)
}

// TenantProvider enumerates the tenants known to the system. Background jobs
// use it to iterate tenants and bind a context per tenant before touching
// tenant-scoped repositories.
type TenantProvider interface {
	ListTenants(ctx context.Context) ([]kernel.TenantID, error)
}
