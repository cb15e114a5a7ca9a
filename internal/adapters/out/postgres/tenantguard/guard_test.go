package tenantguard_test

import (
	"context"
	"log/slog"
	"testing"

	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/tenantctx"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type ownedRow struct {
	TenantID uuid.UUID
}

func (r *ownedRow) TenantValue() uuid.UUID { return r.TenantID }
func (r *ownedRow) SetTenant(id uuid.UUID) { r.TenantID = id }

func boundCtx(t *testing.T) (context.Context, kernel.TenantID) {
	t.Helper()
	tenant := kernel.NewTenantID()
	ctx := tenantctx.Bind(context.Background(), tenantctx.Actor{
		UserID: "user-1",
		Tenant: tenant,
		Role:   "attendant",
	})
	return ctx, tenant
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestGuard_Scope(t *testing.T) {
	t.Run("hardened should restrict to the context tenant", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())
		ctx, tenant := boundCtx(t)

		scope, err := guard.Scope(ctx)
		require.NoError(t, err)

		stmt := scope(openDB(t).Table("orders")).Find(&[]ownedRow{}).Statement
		assert.Contains(t, stmt.SQL.String(), "tenant_id = ?")
		require.Len(t, stmt.Vars, 1)
		assert.Equal(t, tenant.Bytes(), stmt.Vars[0])
	})

	t.Run("hardened should reject an unbound context", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())

		_, err := guard.Scope(context.Background())

		require.ErrorIs(t, err, errs.ErrTenantContextMissing)
	})

	t.Run("relaxed should run an unbound query unscoped", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Relaxed, slog.Default())

		scope, err := guard.Scope(context.Background())
		require.NoError(t, err)

		stmt := scope(openDB(t).Table("orders")).Find(&[]ownedRow{}).Statement
		assert.NotContains(t, stmt.SQL.String(), "tenant_id")
	})
}

func TestGuard_Stamp(t *testing.T) {
	t.Run("should stamp the context tenant onto the payload", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())
		ctx, tenant := boundCtx(t)
		row := &ownedRow{}

		require.NoError(t, guard.Stamp(ctx, row))
		assert.Equal(t, tenant.Bytes(), row.TenantID)
	})

	t.Run("should overwrite a mismatched payload tenant", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())
		ctx, tenant := boundCtx(t)
		row := &ownedRow{TenantID: kernel.NewTenantID().Bytes()}

		require.NoError(t, guard.Stamp(ctx, row))
		assert.Equal(t, tenant.Bytes(), row.TenantID)
	})

	t.Run("hardened should reject an unbound write", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Hardened, slog.Default())

		err := guard.Stamp(context.Background(), &ownedRow{})

		require.ErrorIs(t, err, errs.ErrTenantContextMissing)
	})

	t.Run("relaxed should keep the payload tenant on an unbound write", func(t *testing.T) {
		guard := tenantguard.NewGuard(tenantguard.Relaxed, slog.Default())
		original := kernel.NewTenantID().Bytes()
		row := &ownedRow{TenantID: original}

		require.NoError(t, guard.Stamp(context.Background(), row))
		assert.Equal(t, original, row.TenantID)
	})
}
