// Package issuerepo provides data transfer objects and mapping functions for
// issue persistence.
package issuerepo

import (
	"time"

	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// IssueDTO represents the database structure for persisting issues. A null
// solved_at marks the issue unresolved; the gate evaluator and the order's
// issue flag both count on that column.
type IssueDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID    uuid.UUID `gorm:"type:uuid;index:idx_issues_tenant_order"`
	OrderID     uuid.UUID `gorm:"type:uuid;index:idx_issues_tenant_order"`
	OrderItemID uuid.UUID `gorm:"type:uuid"`
	Code        string
	Text        string
	Priority    string
	PhotoRef    string
	CreatedBy   string
	CreatedAt   time.Time
	SolvedAt    *time.Time `gorm:"index"`
	SolvedBy    string
	SolvedNotes string
}

// TableName specifies the database table name for issues.
func (IssueDTO) TableName() string {
	return "issues"
}

// TenantValue returns the stored tenant column.
func (d *IssueDTO) TenantValue() uuid.UUID { return d.TenantID }

// SetTenant overwrites the stored tenant column.
func (d *IssueDTO) SetTenant(id uuid.UUID) { d.TenantID = id }

// fromDomain maps the domain issue to its database row. The tenant column is
// left for the guard to stamp.
func fromDomain(entity *issue.Issue) IssueDTO {
	return IssueDTO{
		ID:          entity.ID().Bytes(),
		OrderID:     entity.OrderID().Bytes(),
		OrderItemID: entity.OrderItemID().Bytes(),
		Code:        string(entity.Code()),
		Text:        entity.Text(),
		Priority:    string(entity.Priority()),
		PhotoRef:    entity.PhotoRef(),
		CreatedBy:   entity.CreatedBy(),
		CreatedAt:   entity.CreatedAt(),
		SolvedAt:    entity.SolvedAt(),
		SolvedBy:    entity.SolvedBy(),
		SolvedNotes: entity.SolvedNotes(),
	}
}

// toDomain restores the domain issue from its database row.
func toDomain(dto IssueDTO) (*issue.Issue, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}

	return issue.RestoreIssue(
		id, orderID, orderItemID,
		issue.Code(dto.Code), dto.Text, issue.Priority(dto.Priority), dto.PhotoRef,
		dto.CreatedBy, dto.CreatedAt,
		dto.SolvedAt, dto.SolvedBy, dto.SolvedNotes,
	), nil
}
