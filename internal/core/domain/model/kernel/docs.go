// Package kernel contains shared value objects used across the domain model:
// entity identifiers (UUID), the tenant identifier that scopes every other
// entity, and monetary amounts.
//
// All types in this package are immutable value objects. Zero values are
// invalid and must be constructed through the provided factory functions;
// Validate reports improperly constructed instances.
package kernel
