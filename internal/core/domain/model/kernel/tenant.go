package kernel

import (
	"fmt"

	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrTenantIDIsNotConstructed indicates a zero-value TenantID.
var ErrTenantIDIsNotConstructed = errs.NewValueIsRequiredError(
	"TenantID must be created via NewTenantID or TenantIDFromString")

// TenantID identifies one customer organization, the unit of data isolation.
// Every persistent entity in the system is scoped to exactly one TenantID.
//
// TenantID is deliberately a distinct type from UUID: it is never accepted
// from request payloads for scoping purposes, only resolved from the
// authenticated session and bound into the request context.
type TenantID struct {
	id uuid.UUID
}

// NewTenantID generates a new random tenant identifier.
// Used when provisioning a tenant, not during request handling.
func NewTenantID() TenantID {
	return TenantID{id: uuid.New()}
}

// TenantIDFromString parses a tenant identifier from its string form,
// typically a JWT claim or a database column.
func TenantIDFromString(s string) (TenantID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TenantID{}, fmt.Errorf("invalid tenant ID format: %w", err)
	}
	return TenantID{id: id}, nil
}

// String returns the canonical string form.
func (t TenantID) String() string {
	return t.id.String()
}

// Bytes returns the underlying uuid.UUID value for persistence mapping.
func (t TenantID) Bytes() uuid.UUID {
	return t.id
}

// IsEqual compares two tenant identifiers.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.id == other.id
}

// Validate returns ErrTenantIDIsNotConstructed for the zero value.
func (t TenantID) Validate() error {
	if t.id == uuid.Nil {
		return ErrTenantIDIsNotConstructed
	}
	return nil
}
