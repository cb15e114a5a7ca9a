package order

import (
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// History actions. Most entries record a status transition; splits record an
// entry of their own so the audit trail explains where child orders came from.
const (
	HistoryActionTransition = "TRANSITION"
	HistoryActionSplit      = "SPLIT"
)

// HistoryEntry is one append-only audit record of an order's lifecycle.
// Entries are never mutated or deleted; the order's current status always
// equals the to-status of its most recent transition entry.
type HistoryEntry struct {
	id         kernel.UUID
	action     string
	fromStatus string // empty for the initial transition
	toStatus   string
	actor      string
	at         time.Time
	notes      string
	metadata   map[string]string
}

// NewHistoryEntry creates a transition audit record.
func NewHistoryEntry(
	action, fromStatus, toStatus, actor string,
	at time.Time, notes string, metadata map[string]string,
) (HistoryEntry, error) {
	if actor == "" {
		return HistoryEntry{}, errs.NewValueIsRequiredError("actor")
	}
	return HistoryEntry{
		id:         kernel.NewUUID(),
		action:     action,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actor:      actor,
		at:         at,
		notes:      notes,
		metadata:   metadata,
	}, nil
}

// RestoreHistoryEntry rebuilds an audit record from persistence.
func RestoreHistoryEntry(
	id kernel.UUID, action, fromStatus, toStatus, actor string,
	at time.Time, notes string, metadata map[string]string,
) HistoryEntry {
	return HistoryEntry{
		id:         id,
		action:     action,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actor:      actor,
		at:         at,
		notes:      notes,
		metadata:   metadata,
	}
}

func (h HistoryEntry) ID() kernel.UUID { return h.id }
func (h HistoryEntry) Action() string { return h.action }
func (h HistoryEntry) FromStatus() string { return h.fromStatus }
func (h HistoryEntry) ToStatus() string { return h.toStatus }
func (h HistoryEntry) Actor() string { return h.actor }
func (h HistoryEntry) At() time.Time { return h.at }
func (h HistoryEntry) Notes() string { return h.notes }
func (h HistoryEntry) Metadata() map[string]string { return h.metadata }
