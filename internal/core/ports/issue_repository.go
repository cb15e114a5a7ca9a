package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"
)

// IssueRepository defines the persistence contract for issue aggregates.
// Gate evaluation depends on CountUnresolvedByOrder reading committed state,
// so implementations must not serve it from a cache.
type IssueRepository interface {
	// Add persists a new issue.
	Add(ctx context.Context, aggregate *issue.Issue) error

	// Update persists changes to an existing issue, typically a resolution.
	Update(ctx context.Context, aggregate *issue.Issue) error

	// Get retrieves an issue by its unique identifier within the current
	// tenant.
	Get(ctx context.Context, id kernel.UUID) (*issue.Issue, error)

	// GetAllByOrder retrieves every issue attached to the given order,
	// newest first.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*issue.Issue, error)

	// CountUnresolvedByOrder counts the order's unresolved issues.
	CountUnresolvedByOrder(ctx context.Context, orderID kernel.UUID) (int64, error)

	// GetUnresolvedOlderThan retrieves unresolved issues created before the
	// cutoff, used by the stale issue reminder job.
	GetUnresolvedOlderThan(ctx context.Context, cutoff time.Time) ([]*issue.Issue, error)
}
