// Package errs provides standardized error types for the laundry back office.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classification works
//
// The domain-specific kinds map one-to-one onto the order lifecycle taxonomy:
// TenantContextMissing (guard fail-closed), InvalidTransition, GateNotSatisfied,
// ConcurrentModification (retryable), AlreadyResolved, QueryTimeout. Malformed
// input maps onto ValueIsInvalid / ValueIsRequired / ValueIsOutOfRange, and
// absent-or-foreign-tenant lookups onto ObjectNotFound.
package errs
