package errs_test

import (
	"errors"
	"testing"

	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("barcode")

		assert.Equal(t, "barcode", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: barcode", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("barcode", cause)

		assert.Equal(t, "barcode", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: barcode (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("sequence", 0, 1, 100)

		assert.Equal(t, "sequence", err.ParamName)
		assert.Equal(t, 0, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 100, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 0 is sequence, min value is 1, max value is 100", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("quantity", -5, 0, 100, cause)

		assert.Equal(t, "quantity", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is quantity, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("reason")

		assert.Equal(t, "reason", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: reason", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("reason", cause)

		assert.Equal(t, "reason", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: reason (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestDomainErrors(t *testing.T) {
	t.Run("TenantContextMissingError", func(t *testing.T) {
		err := errs.NewTenantContextMissingError("orders.read")

		assert.Equal(t, "orders.read", err.Operation)
		assert.Equal(t, "tenant context missing: orders.read", err.Error())
		assert.Equal(t, errs.ErrTenantContextMissing, err.Unwrap())
	})

	t.Run("InvalidTransitionError", func(t *testing.T) {
		err := errs.NewInvalidTransitionError("processing", "delivered")

		assert.Equal(t, "processing", err.From)
		assert.Equal(t, "delivered", err.To)
		assert.Equal(t, "invalid transition: processing -> delivered", err.Error())
		assert.Equal(t, errs.ErrInvalidTransition, err.Unwrap())
	})

	t.Run("GateNotSatisfiedError", func(t *testing.T) {
		err := errs.NewGateNotSatisfiedError("no_unresolved_issues", "2 issues open")

		assert.Equal(t, "no_unresolved_issues", err.Gate)
		assert.Equal(t, "gate not satisfied: no_unresolved_issues (2 issues open)", err.Error())
		assert.Equal(t, errs.ErrGateNotSatisfied, err.Unwrap())
	})

	t.Run("GateNotSatisfiedError without reason", func(t *testing.T) {
		err := errs.NewGateNotSatisfiedError("qa_passed", "")
		assert.Equal(t, "gate not satisfied: qa_passed", err.Error())
	})

	t.Run("ConcurrentModificationError", func(t *testing.T) {
		err := errs.NewConcurrentModificationError("order", "abc")

		assert.Equal(t, "concurrent modification: order abc", err.Error())
		assert.Equal(t, errs.ErrConcurrentModification, err.Unwrap())
	})

	t.Run("AlreadyResolvedError", func(t *testing.T) {
		err := errs.NewAlreadyResolvedError("issue-1")

		assert.Equal(t, "already resolved: issue issue-1", err.Error())
		assert.Equal(t, errs.ErrAlreadyResolved, err.Unwrap())
	})

	t.Run("QueryTimeoutError", func(t *testing.T) {
		cause := errors.New("context deadline exceeded")
		err := errs.NewQueryTimeoutError("orders.listActive", cause)

		assert.Equal(t, "query timed out: orders.listActive (cause: context deadline exceeded)", err.Error())
		assert.Equal(t, errs.ErrQueryTimeout, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "tenant context missing", errs.ErrTenantContextMissing.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "gate not satisfied", errs.ErrGateNotSatisfied.Error())
		assert.Equal(t, "concurrent modification", errs.ErrConcurrentModification.Error())
		assert.Equal(t, "already resolved", errs.ErrAlreadyResolved.Error())
		assert.Equal(t, "query timed out", errs.ErrQueryTimeout.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewValueIsInvalidError("barcode"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("seq", 0, 1, 10), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("reason"), errs.ErrValueIsRequired)
		require.ErrorIs(t, errs.NewTenantContextMissingError("op"), errs.ErrTenantContextMissing)
		require.ErrorIs(t, errs.NewInvalidTransitionError("a", "b"), errs.ErrInvalidTransition)
		require.ErrorIs(t, errs.NewGateNotSatisfiedError("g", ""), errs.ErrGateNotSatisfied)
		require.ErrorIs(t, errs.NewConcurrentModificationError("order", "1"), errs.ErrConcurrentModification)
		require.ErrorIs(t, errs.NewAlreadyResolvedError("1"), errs.ErrAlreadyResolved)
		require.ErrorIs(t, errs.NewQueryTimeoutError("op", nil), errs.ErrQueryTimeout)
	})
}
