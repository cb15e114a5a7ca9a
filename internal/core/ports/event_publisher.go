package ports

import (
	"context"
	"time"
)

// Event kinds published on the tenant's event channel.
const (
	EventOrderCreated      = "order.created"
	EventOrderTransitioned = "order.transitioned"
	EventOrderSplit        = "order.split"
	EventOrderOverdue      = "order.overdue"
	EventIssueCreated      = "issue.created"
	EventIssueResolved     = "issue.resolved"
)

// OrderEvent is the notification payload emitted after a state change
// commits. Events are fire-and-forget: publishing failures must never fail
// the operation that produced them.
type OrderEvent struct {
	Kind       string    `json:"kind"`
	Tenant     string    `json:"tenant"`
	OrderID    string    `json:"orderId"`
	Number     string    `json:"number,omitempty"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus,omitempty"`
	IssueID    string    `json:"issueId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher pushes committed state changes to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}
