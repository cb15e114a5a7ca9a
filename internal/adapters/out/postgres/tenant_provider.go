package postgres

import (
	"context"

	"laundry/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantProvider lists the tenants known to storage. Background jobs use
// it to fan out per-tenant sweeps; it is the only reader that legitimately
// runs without a tenant binding, and it exposes nothing but tenant
// identifiers.
type GormTenantProvider struct {
	db *gorm.DB
}

// NewGormTenantProvider creates a new GORM tenant provider.
func NewGormTenantProvider(db *gorm.DB) *GormTenantProvider {
	return &GormTenantProvider{db: db}
}

// ListTenants returns every tenant that has orders or a workflow
// configuration.
func (p *GormTenantProvider) ListTenants(ctx context.Context) ([]kernel.TenantID, error) {
	var rows []uuid.UUID
	err := p.db.WithContext(ctx).
		Raw("SELECT tenant_id FROM orders UNION SELECT tenant_id FROM workflows").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tenants := make([]kernel.TenantID, 0, len(rows))
	for _, row := range rows {
		tenant, convErr := kernel.TenantIDFromString(row.String())
		if convErr != nil {
			return nil, convErr
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}
