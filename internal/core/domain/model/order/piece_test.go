package order_test

import (
	"strings"
	"testing"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBarcode(t *testing.T) {
	t.Run("should accept alphanumeric with hyphen and underscore", func(t *testing.T) {
		require.NoError(t, order.ValidateBarcode("BC-2025_0001"))
	})

	t.Run("should reject empty barcode", func(t *testing.T) {
		require.ErrorIs(t, order.ValidateBarcode(""), errs.ErrValueIsRequired)
	})

	t.Run("should reject barcode over the length cap", func(t *testing.T) {
		require.ErrorIs(t, order.ValidateBarcode(strings.Repeat("a", 101)), errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject characters outside the alphabet", func(t *testing.T) {
		require.ErrorIs(t, order.ValidateBarcode("BC 0001"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, order.ValidateBarcode("BC#0001"), errs.ErrValueIsInvalid)
	})
}

func TestPiece_SetStatus(t *testing.T) {
	item := newTestItem(t, 1, kernel.Money(100))
	item.GeneratePieces(1)
	piece := item.Pieces()[0]

	t.Run("should accept known statuses", func(t *testing.T) {
		require.NoError(t, piece.SetStatus(order.PieceStatusProcessed))
		require.NoError(t, piece.SetStatus(order.PieceStatusAssembled))
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		err := piece.SetStatus(order.PieceStatus("lost"))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.PieceStatusAssembled, piece.Status())
	})
}

func TestValidateSequence(t *testing.T) {
	item := newTestItem(t, 2, kernel.Money(100))
	item.GeneratePieces(2)

	t.Run("should accept the next free sequence", func(t *testing.T) {
		require.NoError(t, order.ValidateSequence(item.Pieces(), 3))
	})

	t.Run("should reject a sequence below one", func(t *testing.T) {
		require.ErrorIs(t, order.ValidateSequence(item.Pieces(), 0), errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject a duplicate sequence", func(t *testing.T) {
		require.ErrorIs(t, order.ValidateSequence(item.Pieces(), 2), errs.ErrValueIsInvalid)
	})
}

func TestPriority(t *testing.T) {
	t.Run("should validate the known values", func(t *testing.T) {
		require.NoError(t, order.PriorityNormal.Validate())
		require.NoError(t, order.PriorityUrgent.Validate())
		require.NoError(t, order.PriorityExpress.Validate())
		require.ErrorIs(t, order.Priority("rush").Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("should shorten turnaround by priority", func(t *testing.T) {
		assert.Equal(t, 1.0, order.PriorityNormal.TurnaroundMultiplier())
		assert.Equal(t, 0.7, order.PriorityUrgent.TurnaroundMultiplier())
		assert.Equal(t, 0.5, order.PriorityExpress.TurnaroundMultiplier())
	})
}
