package orderrepo

import (
	"context"
	"errors"
	"time"

	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/tenantctx"

	"gorm.io/gorm"
)

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormOrderRepository implements OrderRepository using GORM. Every read is
// scoped to the context tenant and every write has its tenant column stamped
// from the context, so a repository caller cannot reach another tenant's rows.
type GormOrderRepository struct {
	db      *gorm.DB
	guard   *tenantguard.Guard
	tracker aggregateTracker
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, guard *tenantguard.Guard, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		guard:   guard,
		tracker: tracker,
	}
}

// Add saves a new order with all child rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, items, pieces, steps, history := fromDomain(aggregate)
	if err := r.guard.Stamp(ctx, &header); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Create(&header).Error; err != nil {
		return err
	}
	if err := r.insertChildren(db, items, pieces, steps, history); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order under the optimistic version check: the
// header row is only written when its stored version still matches the
// version the aggregate was loaded with. Child rows are replaced wholesale,
// which keeps re-sequenced pieces and appended history consistent without
// per-row diffing.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, items, pieces, steps, history := fromDomain(aggregate)
	if err := r.guard.Stamp(ctx, &header); err != nil {
		return err
	}

	loadedVersion := header.Version
	header.Version = loadedVersion + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND tenant_id = ? AND version = ?", header.ID, header.TenantID, loadedVersion).
		Select("*").Omit("id", "tenant_id").
		Updates(&header)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("orderId", aggregate.ID().String())
	}

	for _, model := range []any{&ItemDTO{}, &PieceDTO{}, &StepDTO{}, &HistoryDTO{}} {
		if err := db.Where("order_id = ?", header.ID).Delete(model).Error; err != nil {
			return err
		}
	}
	if err := r.insertChildren(db, items, pieces, steps, history); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID within the current tenant. Orders of other
// tenants are indistinguishable from nonexistent ones.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var header OrderDTO
	err = r.db.WithContext(ctx).Scopes(scope).First(&header, "id = ?", id.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	if err != nil {
		return nil, err
	}

	return r.load(ctx, header)
}

// GetByNumber retrieves an order by its human-readable number within the
// current tenant.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var header OrderDTO
	err = r.db.WithContext(ctx).Scopes(scope).First(&header, "order_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundError("orderNumber", number)
	}
	if err != nil {
		return nil, err
	}

	return r.load(ctx, header)
}

// GetAllActive retrieves the tenant's non-terminal orders ordered by ready-by
// ascending with unscheduled orders last.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var headers []OrderDTO
	err = r.db.WithContext(ctx).Scopes(scope).
		Where("stage != ?", "closed").
		Order("(ready_by IS NULL), ready_by, order_number").
		Find(&headers).Error
	if err != nil {
		return nil, err
	}

	return r.loadAll(ctx, headers)
}

// GetOverdue retrieves active orders whose ready-by has passed.
func (r *GormOrderRepository) GetOverdue(ctx context.Context, now time.Time) ([]*order.Order, error) {
	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return nil, err
	}

	var headers []OrderDTO
	err = r.db.WithContext(ctx).Scopes(scope).
		Where("stage != ? AND ready_by IS NOT NULL AND ready_by < ?", "closed", now).
		Order("ready_by").
		Find(&headers).Error
	if err != nil {
		return nil, err
	}

	return r.loadAll(ctx, headers)
}

// CountChildren counts the orders split off the given parent within the
// current tenant.
func (r *GormOrderRepository) CountChildren(ctx context.Context, parentID kernel.UUID) (int, error) {
	if err := parentID.Validate(); err != nil {
		return 0, err
	}

	scope, err := r.guard.Scope(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(&OrderDTO{}).Scopes(scope).
		Where("parent_id = ?", parentID.Bytes()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// NextNumberSequence reserves the next per-day order number for the tenant.
// Runs inside the caller's transaction so an aborted intake does not burn a
// gap into the visible numbering.
func (r *GormOrderRepository) NextNumberSequence(ctx context.Context, day time.Time) (int, error) {
	// Number reservation always needs a concrete tenant, even in relaxed
	// deployments.
	tenantID, err := tenantctx.Tenant(ctx)
	if err != nil {
		return 0, err
	}
	tenant := tenantID.Bytes()
	key := day.Format("20060102")

	db := r.db.WithContext(ctx)
	result := db.Model(&NumberSequenceDTO{}).
		Where("tenant_id = ? AND day = ?", tenant, key).
		UpdateColumn("counter", gorm.Expr("counter + 1"))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		row := NumberSequenceDTO{TenantID: tenant, Day: key, Counter: 1}
		if createErr := db.Create(&row).Error; createErr != nil {
			return 0, createErr
		}
		return 1, nil
	}

	var counter int
	err = db.Model(&NumberSequenceDTO{}).
		Where("tenant_id = ? AND day = ?", tenant, key).
		Select("counter").Scan(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter, nil
}

func (r *GormOrderRepository) insertChildren(db *gorm.DB, items []ItemDTO, pieces []PieceDTO, steps []StepDTO, history []HistoryDTO) error {
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	if len(pieces) > 0 {
		if err := db.Create(&pieces).Error; err != nil {
			return err
		}
	}
	if len(steps) > 0 {
		if err := db.Create(&steps).Error; err != nil {
			return err
		}
	}
	if len(history) > 0 {
		if err := db.Create(&history).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) load(ctx context.Context, header OrderDTO) (*order.Order, error) {
	db := r.db.WithContext(ctx)

	var items []ItemDTO
	if err := db.Find(&items, "order_id = ?", header.ID).Error; err != nil {
		return nil, err
	}
	var pieces []PieceDTO
	if err := db.Order("seq").Find(&pieces, "order_id = ?", header.ID).Error; err != nil {
		return nil, err
	}
	var steps []StepDTO
	if err := db.Order("seq").Find(&steps, "order_id = ?", header.ID).Error; err != nil {
		return nil, err
	}
	var history []HistoryDTO
	if err := db.Order("at").Find(&history, "order_id = ?", header.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(header, items, pieces, steps, history)
}

func (r *GormOrderRepository) loadAll(ctx context.Context, headers []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(headers))
	for _, header := range headers {
		aggregate, err := r.load(ctx, header)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
