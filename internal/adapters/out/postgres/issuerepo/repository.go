package issuerepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/core/domain/model/issue"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormIssueRepository implements IssueRepository using GORM.
type GormIssueRepository struct {
	db    *gorm.DB
	guard *tenantguard.Guard
}

// NewGormIssueRepository creates a new GORM issue repository.
func NewGormIssueRepository(db *gorm.DB, guard *tenantguard.Guard) *GormIssueRepository {
	return &GormIssueRepository{
		db:    db,
		guard: guard,
	}
}

// Add saves a new issue.
func (r *GormIssueRepository) Add(ctx context.Context, entity *issue.Issue) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.guard.Stamp(ctx, &dto); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing issue.
func (r *GormIssueRepository) Update(ctx context.Context, entity *issue.Issue) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.guard.Stamp(ctx, &dto); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Save(&dto).Error
}

// Get retrieves an issue by ID within the current tenant.
func (r *GormIssueRepository) Get(ctx context.Context, id kernel.UUID) (*issue.Issue, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var dto IssueDTO
	err = r.db.WithContext(ctx).Scopes(scope).First(&dto, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("issueId", id.String())
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByOrder retrieves every issue raised against an order, unresolved
// first, newest first within each group.
func (r *GormIssueRepository) GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*issue.Issue, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var dtos []IssueDTO
	err = r.db.WithContext(ctx).Scopes(scope).
		Where("order_id = ?", orderID.Bytes()).
		Order("(solved_at IS NOT NULL), created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// CountUnresolvedByOrder counts the order's open issues. The no-unresolved-
// issues gate and the order's issue flag read this count.
func (r *GormIssueRepository) CountUnresolvedByOrder(ctx context.Context, orderID kernel.UUID) (int64, error) {
	if err := orderID.Validate(); err != nil {
		return 0, err
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Scopes(scope).Model(&IssueDTO{}).
		Where("order_id = ? AND solved_at IS NULL", orderID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// GetUnresolvedOlderThan retrieves open issues created before the cutoff,
// oldest first.
func (r *GormIssueRepository) GetUnresolvedOlderThan(ctx context.Context, cutoff time.Time) ([]*issue.Issue, error) {
	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var dtos []IssueDTO
	err = r.db.WithContext(ctx).Scopes(scope).
		Where("solved_at IS NULL AND created_at < ?", cutoff).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []IssueDTO) ([]*issue.Issue, error) {
	issues := make([]*issue.Issue, 0, len(dtos))
	for _, dto := range dtos {
		entity, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		issues = append(issues, entity)
	}
	return issues, nil
}
