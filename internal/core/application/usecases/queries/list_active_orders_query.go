// Package queries contains read-only operations for the order lifecycle.
// Implements the query side of the CQRS architecture: handlers read the
// database directly and return plain response structs, bypassing the
// aggregates. Every query is tenant-scoped and bounded by a latency ceiling.
package queries

import (
	"errors"
	"time"

	"laundry/internal/pkg/guard"
)

var ErrListActiveOrdersQueryIsNotConstructed = errors.New(
	"ListActiveOrdersQuery must be created via NewListActiveOrdersQuery constructor",
)

// ListActiveOrdersQuery retrieves the tenant's orders in non-terminal
// statuses, ordered by ready-by ascending with unscheduled orders last.
type ListActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListActiveOrdersQuery creates a query for the active order board.
func NewListActiveOrdersQuery() ListActiveOrdersQuery {
	return ListActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActiveOrdersQueryIsNotConstructed)
}

// ListActiveOrdersQueryResponse is one row of the active order board.
type ListActiveOrdersQueryResponse struct {
	ID               string
	OrderNumber      string
	Status           string
	Stage            string
	Priority         string
	ItemCount        int
	TotalAmountCents int64
	ReadyBy          *time.Time
	HasIssue         bool
}
