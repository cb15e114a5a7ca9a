package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is. Every typed error in this
// package unwraps to exactly one of these.
var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrVersionIsInvalid       = errors.New("version is invalid")
	ErrTenantContextMissing   = errors.New("tenant context missing")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrGateNotSatisfied       = errors.New("gate not satisfied")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrAlreadyResolved        = errors.New("already resolved")
	ErrQueryTimeout           = errors.New("query timed out")
)

// sanitize collapses newlines so multi-line values cannot break log lines.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// ObjectNotFoundError indicates that a referenced object does not exist.
// It is also returned for objects that exist under a different tenant,
// so callers cannot distinguish "absent" from "not yours".
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates that a numeric value is outside its allowed bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string, value, minValue, maxValue any, cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, e.Value, e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return sanitize(msg)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError indicates that an aggregate version is malformed.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// TenantContextMissingError is raised by the isolation guard when a data-access
// operation runs without a bound tenant. The guard fails closed: the operation
// is rejected before it reaches the store.
type TenantContextMissingError struct {
	Operation string
}

func NewTenantContextMissingError(operation string) *TenantContextMissingError {
	return &TenantContextMissingError{Operation: operation}
}

func (e *TenantContextMissingError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrTenantContextMissing, e.Operation))
}

func (e *TenantContextMissingError) Unwrap() error {
	return ErrTenantContextMissing
}

// InvalidTransitionError indicates a status change along an edge the tenant's
// workflow does not permit. From is empty for an initial transition.
type InvalidTransitionError struct {
	From string
	To   string
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To))
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// GateNotSatisfiedError names the quality gate that blocked a transition,
// so the caller can report exactly why the order cannot move on.
type GateNotSatisfiedError struct {
	Gate   string
	Reason string
}

func NewGateNotSatisfiedError(gate, reason string) *GateNotSatisfiedError {
	return &GateNotSatisfiedError{Gate: gate, Reason: reason}
}

func (e *GateNotSatisfiedError) Error() string {
	if e.Reason != "" {
		return sanitize(fmt.Sprintf("%s: %s (%s)", ErrGateNotSatisfied, e.Gate, e.Reason))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrGateNotSatisfied, e.Gate))
}

func (e *GateNotSatisfiedError) Unwrap() error {
	return ErrGateNotSatisfied
}

// ConcurrentModificationError indicates an optimistic-concurrency check lost a
// race: the aggregate changed between read and commit. Retryable.
type ConcurrentModificationError struct {
	ParamName string
	ID        any
}

func NewConcurrentModificationError(paramName string, id any) *ConcurrentModificationError {
	return &ConcurrentModificationError{ParamName: paramName, ID: id}
}

func (e *ConcurrentModificationError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s %s", ErrConcurrentModification, e.ParamName, e.ID))
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// AlreadyResolvedError indicates a second resolution attempt on an issue.
type AlreadyResolvedError struct {
	IssueID any
}

func NewAlreadyResolvedError(issueID any) *AlreadyResolvedError {
	return &AlreadyResolvedError{IssueID: issueID}
}

func (e *AlreadyResolvedError) Error() string {
	return sanitize(fmt.Sprintf("%s: issue %s", ErrAlreadyResolved, e.IssueID))
}

func (e *AlreadyResolvedError) Unwrap() error {
	return ErrAlreadyResolved
}

// QueryTimeoutError indicates a list-style read exceeded its latency ceiling.
// Distinct from store failures so callers can tell a slow store from a broken one.
type QueryTimeoutError struct {
	Operation string
	Cause     error
}

func NewQueryTimeoutError(operation string, cause error) *QueryTimeoutError {
	return &QueryTimeoutError{Operation: operation, Cause: cause}
}

func (e *QueryTimeoutError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrQueryTimeout, e.Operation, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrQueryTimeout, e.Operation))
}

func (e *QueryTimeoutError) Unwrap() error {
	return ErrQueryTimeout
}
