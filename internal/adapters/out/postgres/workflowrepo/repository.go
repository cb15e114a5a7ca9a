package workflowrepo

import (
	"context"
	"errors"

	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/tenantctx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkflowRepository implements WorkflowRepository using GORM.
type GormWorkflowRepository struct {
	db    *gorm.DB
	guard *tenantguard.Guard
}

// NewGormWorkflowRepository creates a new GORM workflow repository.
func NewGormWorkflowRepository(db *gorm.DB, guard *tenantguard.Guard) *GormWorkflowRepository {
	return &GormWorkflowRepository{
		db:    db,
		guard: guard,
	}
}

// Get resolves the workflow for the given service category. The
// category-specific configuration wins when one is stored; otherwise the
// tenant-wide one applies, and a tenant that never customized its workflow
// gets the standard default progression.
func (r *GormWorkflowRepository) Get(ctx context.Context, serviceCategory string) (*workflow.Workflow, error) {
	tenant, err := tenantctx.Tenant(ctx)
	if err != nil {
		return nil, err
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	categories := []string{""}
	if serviceCategory != "" {
		categories = []string{serviceCategory, ""}
	}
	for _, category := range categories {
		var dto WorkflowDTO
		err = r.db.WithContext(ctx).Scopes(scope).First(&dto, "service_category = ?", category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return toDomain(dto)
	}

	return workflow.DefaultWorkflow(tenant), nil
}

// Save upserts the tenant's workflow configuration.
func (r *GormWorkflowRepository) Save(ctx context.Context, wf *workflow.Workflow) error {
	if err := wf.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(wf)
	if err != nil {
		return err
	}
	if err = r.guard.Stamp(ctx, &dto); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "service_category"}},
		DoUpdates: clause.AssignmentColumns([]string{"definition"}),
	}).Create(&dto).Error
}
