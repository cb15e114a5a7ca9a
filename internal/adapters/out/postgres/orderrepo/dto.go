// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate: the orders table holds the header with its optimistic version
// column, and items, pieces, processing steps, and history live in child
// tables keyed back to the order.
package orderrepo

import (
	"encoding/json"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order headers.
// The tenant column is stamped by the tenant guard on every write; Version
// backs the optimistic concurrency check.
type OrderDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID          uuid.UUID `gorm:"type:uuid;index:idx_orders_tenant_stage;uniqueIndex:idx_orders_tenant_number"`
	CustomerID        uuid.UUID `gorm:"type:uuid;index"`
	OrderNumber       string    `gorm:"uniqueIndex:idx_orders_tenant_number"`
	ServiceCategory   string
	Status            string
	Stage             string `gorm:"index:idx_orders_tenant_stage"`
	Priority          string
	QuickDrop         bool
	QuickDropQuantity int
	ItemCount         int
	TotalAmount       int64
	ReceivedAt        time.Time
	ReadyBy           *time.Time `gorm:"index"`
	HasIssue          bool
	Rejected          bool
	ParentID          *uuid.UUID `gorm:"type:uuid;index"`
	Version           int
}

// TableName specifies the database table name for order headers.
func (OrderDTO) TableName() string {
	return "orders"
}

// TenantValue returns the stored tenant column.
func (d *OrderDTO) TenantValue() uuid.UUID { return d.TenantID }

// SetTenant overwrites the stored tenant column.
func (d *OrderDTO) SetTenant(id uuid.UUID) { d.TenantID = id }

// ItemDTO represents one order item row.
type ItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index"`
	ProductID       uuid.UUID `gorm:"type:uuid"`
	Quantity        int
	UnitPrice       int64
	TotalPrice      int64
	PriceOverridden bool
	OverrideReason  string
	HasStain        bool
	StainNotes      string
	HasDamage       bool
	DamageNotes     string
	Status          string
	LastStep        string
}

// TableName specifies the database table name for order items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// PieceDTO represents one tracked physical piece. OrderID is denormalized so
// piece rows can be scoped per order without joining through items.
type PieceDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	ItemID       uuid.UUID `gorm:"type:uuid;index"`
	Seq          int
	Barcode      string
	Status       string
	RackLocation string
	Rejected     bool
	Notes        string
}

// TableName specifies the database table name for pieces.
func (PieceDTO) TableName() string {
	return "order_pieces"
}

// StepDTO represents one append-only processing log entry.
type StepDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;index"`
	ItemID  uuid.UUID `gorm:"type:uuid;index"`
	Code    string
	Seq     int
	Actor   string
	At      time.Time
	Notes   string
}

// TableName specifies the database table name for processing steps.
func (StepDTO) TableName() string {
	return "order_steps"
}

// HistoryDTO represents one append-only status history entry. Metadata is
// stored as a JSON object.
type HistoryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Action     string
	FromStatus string
	ToStatus   string
	Actor      string
	At         time.Time
	Notes      string
	Metadata   string
}

// TableName specifies the database table name for order history.
func (HistoryDTO) TableName() string {
	return "order_history"
}

// NumberSequenceDTO backs the per-tenant per-day order number counter.
type NumberSequenceDTO struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Day      string    `gorm:"primaryKey"`
	Counter  int
}

// TableName specifies the database table name for number sequences.
func (NumberSequenceDTO) TableName() string {
	return "order_number_sequences"
}

// fromDomain flattens an order aggregate into its header row and child rows.
func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO, []PieceDTO, []StepDTO, []HistoryDTO) {
	orderID := aggregate.ID().Bytes()

	var parentID *uuid.UUID
	if pid := aggregate.ParentID(); pid != nil {
		raw := pid.Bytes()
		parentID = &raw
	}

	header := OrderDTO{
		ID:                orderID,
		TenantID:          aggregate.TenantID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		OrderNumber:       aggregate.OrderNumber(),
		ServiceCategory:   aggregate.ServiceCategory(),
		Status:            aggregate.Status(),
		Stage:             string(aggregate.Stage()),
		Priority:          aggregate.Priority().String(),
		QuickDrop:         aggregate.IsQuickDrop(),
		QuickDropQuantity: aggregate.QuickDropQuantity(),
		ItemCount:         aggregate.ItemCount(),
		TotalAmount:       aggregate.TotalAmount().Cents(),
		ReceivedAt:        aggregate.ReceivedAt(),
		ReadyBy:           aggregate.ReadyBy(),
		HasIssue:          aggregate.HasIssue(),
		Rejected:          aggregate.IsRejected(),
		ParentID:          parentID,
		Version:           aggregate.Version(),
	}

	var items []ItemDTO
	var pieces []PieceDTO
	var steps []StepDTO
	for _, item := range aggregate.Items() {
		itemID := item.ID().Bytes()
		items = append(items, ItemDTO{
			ID:              itemID,
			OrderID:         orderID,
			ProductID:       item.ProductID().Bytes(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice().Cents(),
			TotalPrice:      item.TotalPrice().Cents(),
			PriceOverridden: item.IsPriceOverridden(),
			OverrideReason:  item.OverrideReason(),
			HasStain:        item.HasStain(),
			StainNotes:      item.StainNotes(),
			HasDamage:       item.HasDamage(),
			DamageNotes:     item.DamageNotes(),
			Status:          string(item.Status()),
			LastStep:        string(item.LastStep()),
		})
		for _, piece := range item.Pieces() {
			pieces = append(pieces, PieceDTO{
				ID:           piece.ID().Bytes(),
				OrderID:      orderID,
				ItemID:       itemID,
				Seq:          piece.Seq(),
				Barcode:      piece.Barcode(),
				Status:       string(piece.Status()),
				RackLocation: piece.RackLocation(),
				Rejected:     piece.IsRejected(),
				Notes:        piece.Notes(),
			})
		}
		for _, step := range item.Steps() {
			steps = append(steps, StepDTO{
				ID:      step.ID().Bytes(),
				OrderID: orderID,
				ItemID:  itemID,
				Code:    string(step.Code()),
				Seq:     step.Seq(),
				Actor:   step.Actor(),
				At:      step.At(),
				Notes:   step.Notes(),
			})
		}
	}

	var history []HistoryDTO
	for _, entry := range aggregate.History() {
		metadata := ""
		if len(entry.Metadata()) > 0 {
			if raw, err := json.Marshal(entry.Metadata()); err == nil {
				metadata = string(raw)
			}
		}
		history = append(history, HistoryDTO{
			ID:         entry.ID().Bytes(),
			OrderID:    orderID,
			Action:     entry.Action(),
			FromStatus: entry.FromStatus(),
			ToStatus:   entry.ToStatus(),
			Actor:      entry.Actor(),
			At:         entry.At(),
			Notes:      entry.Notes(),
			Metadata:   metadata,
		})
	}

	return header, items, pieces, steps, history
}

// toDomain reconstructs the aggregate from its header and child rows.
func toDomain(header OrderDTO, itemRows []ItemDTO, pieceRows []PieceDTO, stepRows []StepDTO, historyRows []HistoryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}
	tenantID, err := kernel.TenantIDFromString(header.TenantID.String())
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(header.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var parentID *kernel.UUID
	if header.ParentID != nil {
		pid, parentErr := kernel.UUIDFromBytes((*header.ParentID)[:])
		if parentErr != nil {
			return nil, parentErr
		}
		parentID = &pid
	}

	piecesByItem := make(map[uuid.UUID][]*order.Piece)
	for _, row := range pieceRows {
		pieceID, pieceErr := kernel.UUIDFromBytes(row.ID[:])
		if pieceErr != nil {
			return nil, pieceErr
		}
		piecesByItem[row.ItemID] = append(piecesByItem[row.ItemID], order.RestorePiece(
			pieceID, row.Seq, row.Barcode, order.PieceStatus(row.Status),
			row.RackLocation, row.Rejected, row.Notes,
		))
	}

	stepsByItem := make(map[uuid.UUID][]order.StepRecord)
	for _, row := range stepRows {
		stepID, stepErr := kernel.UUIDFromBytes(row.ID[:])
		if stepErr != nil {
			return nil, stepErr
		}
		itemID, stepErr := kernel.UUIDFromBytes(row.ItemID[:])
		if stepErr != nil {
			return nil, stepErr
		}
		stepsByItem[row.ItemID] = append(stepsByItem[row.ItemID], order.RestoreStepRecord(
			stepID, itemID, order.StepCode(row.Code), row.Seq, row.Actor, row.At, row.Notes,
		))
	}

	items := make([]*order.Item, 0, len(itemRows))
	for _, row := range itemRows {
		itemID, itemErr := kernel.UUIDFromBytes(row.ID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		productID, itemErr := kernel.UUIDFromBytes(row.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, order.RestoreItem(
			itemID, productID, row.Quantity,
			kernel.Money(row.UnitPrice), kernel.Money(row.TotalPrice),
			row.PriceOverridden, row.OverrideReason,
			row.HasStain, row.StainNotes,
			row.HasDamage, row.DamageNotes,
			order.ItemStatus(row.Status), order.StepCode(row.LastStep),
			piecesByItem[row.ID], stepsByItem[row.ID],
		))
	}

	history := make([]order.HistoryEntry, 0, len(historyRows))
	for _, row := range historyRows {
		entryID, entryErr := kernel.UUIDFromBytes(row.ID[:])
		if entryErr != nil {
			return nil, entryErr
		}
		var metadata map[string]string
		if row.Metadata != "" {
			if unmarshalErr := json.Unmarshal([]byte(row.Metadata), &metadata); unmarshalErr != nil {
				return nil, unmarshalErr
			}
		}
		history = append(history, order.RestoreHistoryEntry(
			entryID, row.Action, row.FromStatus, row.ToStatus, row.Actor, row.At, row.Notes, metadata,
		))
	}

	return order.RestoreOrder(
		id, tenantID, customerID,
		header.OrderNumber, header.ServiceCategory,
		header.Status, workflow.Stage(header.Stage), order.Priority(header.Priority),
		header.QuickDrop, header.QuickDropQuantity,
		header.ItemCount, kernel.Money(header.TotalAmount),
		header.ReceivedAt, header.ReadyBy,
		header.HasIssue, header.Rejected,
		parentID, header.Version,
		items, history,
	)
}
