package order

import (
	"errors"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder, NewQuickDropOrder, or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of the lifecycle engine. It owns its items
// (which own their pieces and processing logs) and its append-only status
// history, and it is always scoped to exactly one tenant.
//
// Invariants maintained here:
//   - current status is a member of the tenant's configured workflow steps
//   - current status equals the to-status of the latest transition entry
//   - item count and total amount follow the owned items
//   - a child order (split) carries its parent's tenant and customer
//
// The version field backs the optimistic-concurrency check: the repository
// only commits an update when the stored version still matches the one read.
type Order struct {
	id       kernel.UUID
	tenantID kernel.TenantID

	customerID      kernel.UUID
	orderNumber     string
	serviceCategory string

	status string
	stage  workflow.Stage

	priority          Priority
	quickDrop         bool
	quickDropQuantity int

	itemCount   int
	totalAmount kernel.Money

	receivedAt time.Time
	readyBy    *time.Time

	hasIssue bool
	rejected bool

	parentID *kernel.UUID
	version  int

	items   []*Item
	history []HistoryEntry

	isConstructed bool
}

// NewOrder creates an order at the workflow's initial status and records the
// initial history entry (from-status empty).
func NewOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerID kernel.UUID,
	orderNumber string,
	serviceCategory string,
	priority Priority,
	receivedAt time.Time,
	wf *workflow.Workflow,
	actor string,
) (*Order, error) {
	return newOrderAt(id, tenantID, customerID, orderNumber, serviceCategory,
		priority, receivedAt, wf, wf.InitialStep(), actor)
}

// NewQuickDropOrder creates an order in quick-drop intake mode: per-item
// detail capture is deferred and only a bag/piece count is tracked. The order
// starts one step past the workflow's initial status, skipping the draft
// phase detailed intake uses.
func NewQuickDropOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerID kernel.UUID,
	orderNumber string,
	serviceCategory string,
	priority Priority,
	receivedAt time.Time,
	wf *workflow.Workflow,
	actor string,
	bagQuantity int,
) (*Order, error) {
	if bagQuantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("bagQuantity", bagQuantity, 1, MaxPieceBatchSize)
	}

	start := wf.InitialStep()
	if next := wf.AllowedFrom(start); len(next) > 0 && next[0] != workflow.StatusCancelled {
		start = next[0]
	}

	o, err := newOrderAt(id, tenantID, customerID, orderNumber, serviceCategory,
		priority, receivedAt, wf, start, actor)
	if err != nil {
		return nil, err
	}
	o.quickDrop = true
	o.quickDropQuantity = bagQuantity
	return o, nil
}

func newOrderAt(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerID kernel.UUID,
	orderNumber string,
	serviceCategory string,
	priority Priority,
	receivedAt time.Time,
	wf *workflow.Workflow,
	initialStatus string,
	actor string,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		customerID.Validate(),
		priority.Validate(),
		wf.Validate(),
	); err != nil {
		return nil, err
	}
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	stage, err := wf.StageOf(initialStatus)
	if err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(HistoryActionTransition, "", initialStatus, actor, receivedAt, "", nil)
	if err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		tenantID:        tenantID,
		customerID:      customerID,
		orderNumber:     orderNumber,
		serviceCategory: serviceCategory,
		status:          initialStatus,
		stage:           stage,
		priority:        priority,
		receivedAt:      receivedAt,
		version:         1,
		history:         []HistoryEntry{entry},
		isConstructed:   true,
	}, nil
}

// RestoreOrder rebuilds an order aggregate from persistence.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.TenantID,
	customerID kernel.UUID,
	orderNumber string,
	serviceCategory string,
	status string,
	stage workflow.Stage,
	priority Priority,
	quickDrop bool,
	quickDropQuantity int,
	itemCount int,
	totalAmount kernel.Money,
	receivedAt time.Time,
	readyBy *time.Time,
	hasIssue bool,
	rejected bool,
	parentID *kernel.UUID,
	version int,
	items []*Item,
	history []HistoryEntry,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		tenantID.Validate(),
		customerID.Validate(),
		priority.Validate(),
	); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewVersionIsInvalidError("order version")
	}

	return &Order{
		id:                id,
		tenantID:          tenantID,
		customerID:        customerID,
		orderNumber:       orderNumber,
		serviceCategory:   serviceCategory,
		status:            status,
		stage:             stage,
		priority:          priority,
		quickDrop:         quickDrop,
		quickDropQuantity: quickDropQuantity,
		itemCount:         itemCount,
		totalAmount:       totalAmount,
		receivedAt:        receivedAt,
		readyBy:           readyBy,
		hasIssue:          hasIssue,
		rejected:          rejected,
		parentID:          parentID,
		version:           version,
		items:             items,
		history:           history,
		isConstructed:     true,
	}, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) TenantID() kernel.TenantID { return o.tenantID }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) OrderNumber() string { return o.orderNumber }
func (o *Order) ServiceCategory() string { return o.serviceCategory }
func (o *Order) Status() string { return o.status }
func (o *Order) Stage() workflow.Stage { return o.stage }
func (o *Order) Priority() Priority { return o.priority }
func (o *Order) IsQuickDrop() bool { return o.quickDrop }
func (o *Order) QuickDropQuantity() int { return o.quickDropQuantity }
func (o *Order) ItemCount() int { return o.itemCount }
func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }
func (o *Order) ReceivedAt() time.Time { return o.receivedAt }
func (o *Order) ReadyBy() *time.Time { return o.readyBy }
func (o *Order) HasIssue() bool { return o.hasIssue }
func (o *Order) IsRejected() bool { return o.rejected }
func (o *Order) ParentID() *kernel.UUID { return o.parentID }
func (o *Order) Version() int { return o.version }
func (o *Order) Items() []*Item { return o.items }
func (o *Order) History() []HistoryEntry { return o.history }

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Item returns the owned item with the given id.
func (o *Order) Item(itemID kernel.UUID) (*Item, error) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// AddItem attaches an item to the order and refreshes the derived totals.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	o.items = append(o.items, item)
	o.RecomputeTotals()
	return nil
}

// RecomputeTotals refreshes item count and total amount from the owned items.
// Quick-drop orders without captured items keep the bag count.
func (o *Order) RecomputeTotals() {
	count := 0
	var total kernel.Money
	for _, item := range o.items {
		count += item.Quantity()
		total = total.Add(item.TotalPrice())
	}
	if count == 0 && o.quickDrop {
		count = o.quickDropQuantity
	}
	o.itemCount = count
	o.totalAmount = total
}

// TransitionTo validates and executes a status transition against the
// tenant's workflow configuration. Gate evaluation happens before this call;
// this method only checks the edge, updates status and derived stage, and
// appends the history entry. No side effect on rejection.
func (o *Order) TransitionTo(
	wf *workflow.Workflow,
	toStatus string,
	actor string,
	at time.Time,
	notes string,
	metadata map[string]string,
) error {
	if err := wf.Validate(); err != nil {
		return err
	}
	if err := wf.CanTransition(o.status, toStatus); err != nil {
		return err
	}

	stage, err := wf.StageOf(toStatus)
	if err != nil {
		return err
	}
	entry, err := NewHistoryEntry(HistoryActionTransition, o.status, toStatus, actor, at, notes, metadata)
	if err != nil {
		return err
	}

	o.status = toStatus
	o.stage = stage
	if toStatus == workflow.StatusCancelled {
		o.rejected = true
	}
	o.history = append(o.history, entry)
	return nil
}

// SetReadyBy commits the calculated ready-by timestamp.
func (o *Order) SetReadyBy(t time.Time) {
	o.readyBy = &t
}

// RefreshIssueFlag sets the has-issue flag from the committed count of
// unresolved issues across the order's items.
func (o *Order) RefreshIssueFlag(unresolvedCount int) {
	o.hasIssue = unresolvedCount > 0
}

// RecordSplit appends the SPLIT audit entry naming the child order.
func (o *Order) RecordSplit(childID kernel.UUID, actor string, at time.Time, reason string) error {
	entry, err := NewHistoryEntry(HistoryActionSplit, o.status, o.status, actor, at, reason,
		map[string]string{"child_order_id": childID.String()})
	if err != nil {
		return err
	}
	o.history = append(o.history, entry)
	return nil
}

// NewChildOrder creates a split child under the same tenant and customer,
// linked to this order, starting at the parent's current status. The child's
// first history entry records the split.
func (o *Order) NewChildOrder(orderNumber, actor string, at time.Time, reason string) (*Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}
	entry, err := NewHistoryEntry(HistoryActionSplit, "", o.status, actor, at, reason,
		map[string]string{"parent_order_id": o.id.String()})
	if err != nil {
		return nil, err
	}

	parentID := o.id
	return &Order{
		id:              kernel.NewUUID(),
		tenantID:        o.tenantID,
		customerID:      o.customerID,
		orderNumber:     orderNumber,
		serviceCategory: o.serviceCategory,
		status:          o.status,
		stage:           o.stage,
		priority:        o.priority,
		receivedAt:      o.receivedAt,
		readyBy:         o.readyBy,
		parentID:        &parentID,
		version:         1,
		history:         []HistoryEntry{entry},
		isConstructed:   true,
	}, nil
}

// DetachItem removes an owned item (for moving onto a split child) and
// refreshes the derived totals.
func (o *Order) DetachItem(itemID kernel.UUID) (*Item, error) {
	for n, item := range o.items {
		if item.ID().IsEqual(itemID) {
			o.items = append(o.items[:n], o.items[n+1:]...)
			o.RecomputeTotals()
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// DetachPieces moves the identified pieces out of one owned item, returning
// them for adoption by a split child. Remaining pieces are re-sequenced.
func (o *Order) DetachPieces(itemID kernel.UUID, pieceIDs []kernel.UUID) (*Item, []*Piece, error) {
	item, err := o.Item(itemID)
	if err != nil {
		return nil, nil, err
	}
	pieces, err := item.detachPieces(pieceIDs)
	if err != nil {
		return nil, nil, err
	}
	o.RecomputeTotals()
	return item, pieces, nil
}

// MoveQuickDropQuantity shifts part of a quick-drop bag count onto a split
// child. The child becomes a quick-drop order carrying the moved count.
func (o *Order) MoveQuickDropQuantity(child *Order, quantity int) error {
	if !o.quickDrop {
		return errs.NewValueIsInvalidErrorWithCause("quickDropQuantity",
			errors.New("order is not a quick-drop order"))
	}
	if quantity <= 0 || quantity >= o.quickDropQuantity {
		return errs.NewValueIsOutOfRangeError("quickDropQuantity", quantity, 1, o.quickDropQuantity-1)
	}
	o.quickDropQuantity -= quantity
	child.quickDrop = true
	child.quickDropQuantity = quantity
	o.RecomputeTotals()
	child.RecomputeTotals()
	return nil
}

// AdoptItem attaches an item moved from another order of the same tenant and
// re-sequences its pieces.
func (o *Order) AdoptItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	item.resequencePieces()
	o.items = append(o.items, item)
	o.RecomputeTotals()
	return nil
}
