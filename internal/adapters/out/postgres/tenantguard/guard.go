// Package tenantguard enforces tenant isolation at the persistence boundary.
// Repositories pin every read to the context tenant through Scope and stamp
// every write through Stamp, so a forged tenant identifier in a payload or a
// missing binding can never leak another tenant's rows.
package tenantguard

import (
	"context"
	"log/slog"

	"laundry/internal/pkg/tenantctx"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mode selects how the tenant guard treats requests without a tenant
// binding.
type Mode int

const (
	// Hardened rejects every data access without a tenant binding. This is
	// the production mode.
	Hardened Mode = iota
	// Relaxed lets unbound access through with a warning. Only for local
	// development tooling; never run production storage in this mode.
	Relaxed
)

// Owned is implemented by every DTO that carries a tenant column. The
// guard uses it to stamp writes with the context tenant, so a forged tenant
// in a payload can never reach storage.
type Owned interface {
	TenantValue() uuid.UUID
	SetTenant(id uuid.UUID)
}

// Guard applies the tenant binding from the request context to reads and
// writes.
type Guard struct {
	mode   Mode
	logger *slog.Logger
}

// NewGuard creates a guard in the given mode.
func NewGuard(mode Mode, logger *slog.Logger) *Guard {
	return &Guard{
		mode:   mode,
		logger: logger.With("component", "tenant-guard"),
	}
}

// Scope returns a gorm scope restricting the query to the context tenant.
// In Hardened mode an unbound context fails the query; in Relaxed mode it is
// logged and the query runs unrestricted.
func (g *Guard) Scope(ctx context.Context) (func(*gorm.DB) *gorm.DB, error) {
	tenant, err := tenantctx.Tenant(ctx)
	if err != nil {
		if g.mode == Relaxed {
			g.logger.WarnContext(ctx, "data access without tenant binding, running unscoped")
			return func(db *gorm.DB) *gorm.DB { return db }, nil
		}
		return nil, err
	}

	id := tenant.Bytes()
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", id)
	}, nil
}

// Stamp overwrites the payload's tenant column with the context tenant. A
// payload arriving with a different non-zero tenant is logged before being
// overwritten.
func (g *Guard) Stamp(ctx context.Context, payload Owned) error {
	tenant, err := tenantctx.Tenant(ctx)
	if err != nil {
		if g.mode == Relaxed {
			g.logger.WarnContext(ctx, "write without tenant binding, keeping payload tenant")
			return nil
		}
		return err
	}

	id := tenant.Bytes()
	if current := payload.TenantValue(); current != uuid.Nil && current != id {
		g.logger.WarnContext(ctx, "payload tenant differs from context tenant, overwriting",
			"payload_tenant", current.String(),
			"context_tenant", tenant.String(),
		)
	}
	payload.SetTenant(id)
	return nil
}
