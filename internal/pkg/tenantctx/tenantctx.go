// Package tenantctx binds the authenticated tenant identity into a request's
// context.Context. The binding is request-local: goroutines spawned for one
// request observe the same tenant, and concurrent requests can never observe
// each other's binding. Nothing in this package is a process-wide global.
package tenantctx

import (
	"context"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

type contextKey struct{}

// Actor is the authenticated identity resolved once at the start of request
// handling: who is acting, for which tenant, in what role. It is treated as
// opaque input from the identity provider.
type Actor struct {
	UserID string
	Tenant kernel.TenantID
	Role   string
}

// Bind attaches the actor to the context for the lifetime of the request.
// The tenant identifier must be valid; Bind panics on a zero TenantID because
// binding an empty tenant would silently disable isolation downstream.
func Bind(ctx context.Context, actor Actor) context.Context {
	if err := actor.Tenant.Validate(); err != nil {
		panic("tenantctx: Bind called with an unconstructed tenant ID")
	}
	return context.WithValue(ctx, contextKey{}, actor)
}

// FromContext returns the bound actor, or a TenantContextMissing error when
// the context carries no binding.
func FromContext(ctx context.Context) (Actor, error) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	if !ok {
		return Actor{}, errs.NewTenantContextMissingError("tenantctx.FromContext")
	}
	return actor, nil
}

// Tenant returns the bound tenant identifier, or a TenantContextMissing error.
// This is the accessor the isolation guard consults on every data access.
func Tenant(ctx context.Context) (kernel.TenantID, error) {
	actor, err := FromContext(ctx)
	if err != nil {
		return kernel.TenantID{}, err
	}
	return actor.Tenant, nil
}

// IsBound reports whether the context carries a tenant binding.
func IsBound(ctx context.Context) bool {
	_, ok := ctx.Value(contextKey{}).(Actor)
	return ok
}
