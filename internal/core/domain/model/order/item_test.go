package order_test

import (
	"testing"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should derive total price from unit price and quantity", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), 3, kernel.Money(450))

		require.NoError(t, err)
		assert.Equal(t, int64(1350), item.TotalPrice().Cents())
		assert.Equal(t, order.ItemStatusPending, item.Status())
		assert.Empty(t, item.Pieces())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), 0, kernel.Money(450))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject blank product id", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, 1, kernel.Money(450))

		require.Error(t, err)
	})
}

func TestItem_GeneratePieces(t *testing.T) {
	t.Run("should create pieces sequenced from one", func(t *testing.T) {
		item := newTestItem(t, 3, kernel.Money(100))

		item.GeneratePieces(3)

		require.Len(t, item.Pieces(), 3)
		for n, piece := range item.Pieces() {
			assert.Equal(t, n+1, piece.Seq())
			assert.Equal(t, order.PieceStatusPending, piece.Status())
		}
	})

	t.Run("should replace any existing pieces", func(t *testing.T) {
		item := newTestItem(t, 3, kernel.Money(100))
		item.GeneratePieces(3)

		item.GeneratePieces(2)

		assert.Len(t, item.Pieces(), 2)
	})

	t.Run("should clear pieces on non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, 3, kernel.Money(100))
		item.GeneratePieces(3)

		item.GeneratePieces(0)

		assert.Empty(t, item.Pieces())
	})
}

func TestItem_PieceSequencing(t *testing.T) {
	t.Run("should append with the next sequence", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))
		item.GeneratePieces(2)

		piece := item.AddPiece()

		assert.Equal(t, 3, piece.Seq())
		assert.Len(t, item.Pieces(), 3)
	})

	t.Run("should re-sequence after removing from the middle", func(t *testing.T) {
		item := newTestItem(t, 3, kernel.Money(100))
		item.GeneratePieces(3)
		middle := item.Pieces()[1]

		require.NoError(t, item.RemovePiece(middle.ID()))

		require.Len(t, item.Pieces(), 2)
		assert.Equal(t, 1, item.Pieces()[0].Seq())
		assert.Equal(t, 2, item.Pieces()[1].Seq())
	})

	t.Run("should fail removing an unknown piece", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))
		item.GeneratePieces(2)

		require.ErrorIs(t, item.RemovePiece(kernel.NewUUID()), errs.ErrObjectNotFound)
	})
}

func TestItem_AdjustPiecesToQuantity(t *testing.T) {
	t.Run("should grow by appending", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))
		item.GeneratePieces(2)

		item.AdjustPiecesToQuantity(4)

		require.Len(t, item.Pieces(), 4)
		assert.Equal(t, 4, item.Pieces()[3].Seq())
	})

	t.Run("should shrink from the tail and re-sequence", func(t *testing.T) {
		item := newTestItem(t, 5, kernel.Money(100))
		item.GeneratePieces(5)
		kept := item.Pieces()[0].ID()

		item.AdjustPiecesToQuantity(2)

		require.Len(t, item.Pieces(), 2)
		assert.True(t, item.Pieces()[0].ID().IsEqual(kept))
		assert.Equal(t, 1, item.Pieces()[0].Seq())
		assert.Equal(t, 2, item.Pieces()[1].Seq())
	})

	t.Run("should be idempotent at the matching count", func(t *testing.T) {
		item := newTestItem(t, 3, kernel.Money(100))
		item.GeneratePieces(3)
		ids := []kernel.UUID{item.Pieces()[0].ID(), item.Pieces()[1].ID(), item.Pieces()[2].ID()}

		item.AdjustPiecesToQuantity(3)

		require.Len(t, item.Pieces(), 3)
		for n, piece := range item.Pieces() {
			assert.True(t, piece.ID().IsEqual(ids[n]))
		}
	})
}

func TestItem_UpdatePieces(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }
	statusPtr := func(s order.PieceStatus) *order.PieceStatus { return &s }

	t.Run("should apply a valid batch", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))
		item.GeneratePieces(2)

		err := item.UpdatePieces([]order.PieceUpdate{
			{
				PieceID:      item.Pieces()[0].ID(),
				Barcode:      strPtr("BC-0001"),
				Status:       statusPtr(order.PieceStatusProcessed),
				RackLocation: strPtr("A-12"),
			},
			{
				PieceID:  item.Pieces()[1].ID(),
				Rejected: boolPtr(true),
				Notes:    strPtr("lining torn"),
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "BC-0001", item.Pieces()[0].Barcode())
		assert.Equal(t, order.PieceStatusProcessed, item.Pieces()[0].Status())
		assert.Equal(t, "A-12", item.Pieces()[0].RackLocation())
		assert.True(t, item.Pieces()[1].IsRejected())
		assert.Equal(t, "lining torn", item.Pieces()[1].Notes())
	})

	t.Run("should reject an empty batch", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))

		require.ErrorIs(t, item.UpdatePieces(nil), errs.ErrValueIsRequired)
	})

	t.Run("should reject a batch over the cap", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))
		item.GeneratePieces(2)

		updates := make([]order.PieceUpdate, order.MaxPieceBatchSize+1)
		for n := range updates {
			updates[n] = order.PieceUpdate{PieceID: item.Pieces()[0].ID()}
		}

		require.ErrorIs(t, item.UpdatePieces(updates), errs.ErrValueIsOutOfRange)
	})

	t.Run("should report every invalid entry and mutate nothing", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(100))
		item.GeneratePieces(2)

		err := item.UpdatePieces([]order.PieceUpdate{
			{PieceID: item.Pieces()[0].ID(), Barcode: strPtr("BC 0001")}, // space not allowed
			{PieceID: kernel.NewUUID()},
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Equal(t, "", item.Pieces()[0].Barcode())
	})
}

func TestItem_RecordStep(t *testing.T) {
	at := time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC)

	t.Run("should advance through the step vocabulary", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))

		require.NoError(t, item.RecordStep(order.StepSorting, "op-1", at, ""))
		require.NoError(t, item.RecordStep(order.StepWashing, "op-1", at.Add(time.Hour), "cold cycle"))

		assert.Equal(t, order.StepWashing, item.LastStep())
		assert.Equal(t, order.ItemStatusInProcess, item.Status())
		require.Len(t, item.Steps(), 2)
		assert.Equal(t, 3, item.Steps()[1].Seq())
	})

	t.Run("should reject repeating a step", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))
		require.NoError(t, item.RecordStep(order.StepWashing, "op-1", at, ""))

		err := item.RecordStep(order.StepWashing, "op-1", at.Add(time.Hour), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Len(t, item.Steps(), 1)
	})

	t.Run("should reject rewinding", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))
		require.NoError(t, item.RecordStep(order.StepDrying, "op-1", at, ""))

		err := item.RecordStep(order.StepSorting, "op-1", at.Add(time.Hour), "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an unknown step code", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))

		err := item.RecordStep(order.StepCode("ironing"), "op-1", at, "")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject a blank actor", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))

		err := item.RecordStep(order.StepSorting, "", at, "")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestItem_Completion(t *testing.T) {
	at := time.Date(2025, 10, 30, 12, 0, 0, 0, time.UTC)

	finish := func(t *testing.T) *order.Item {
		t.Helper()
		item := newTestItem(t, 1, kernel.Money(100))
		require.NoError(t, item.RecordStep(order.StepFinishing, "op-1", at, ""))
		return item
	}

	t.Run("should require finishing before assembly", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))
		require.NoError(t, item.RecordStep(order.StepWashing, "op-1", at, ""))

		require.ErrorIs(t, item.MarkAssembled(), errs.ErrValueIsInvalid)
		assert.False(t, item.IsProcessed())
	})

	t.Run("should assemble and complete a finished item", func(t *testing.T) {
		item := finish(t)
		assert.True(t, item.IsProcessed())

		require.NoError(t, item.MarkAssembled())
		assert.Equal(t, order.ItemStatusAssembled, item.Status())

		require.NoError(t, item.Complete())
		assert.Equal(t, order.ItemStatusCompleted, item.Status())
	})

	t.Run("should require finishing before completion", func(t *testing.T) {
		item := newTestItem(t, 1, kernel.Money(100))

		require.ErrorIs(t, item.Complete(), errs.ErrValueIsInvalid)
	})
}

func TestItem_OverrideTotalPrice(t *testing.T) {
	t.Run("should require a reason", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(400))

		require.ErrorIs(t, item.OverrideTotalPrice(kernel.Money(500), ""), errs.ErrValueIsRequired)
		assert.False(t, item.IsPriceOverridden())
	})

	t.Run("should replace the derived total", func(t *testing.T) {
		item := newTestItem(t, 2, kernel.Money(400))

		require.NoError(t, item.OverrideTotalPrice(kernel.Money(500), "loyalty discount"))

		assert.Equal(t, int64(500), item.TotalPrice().Cents())
		assert.True(t, item.IsPriceOverridden())
		assert.Equal(t, "loyalty discount", item.OverrideReason())
	})
}

func TestItem_SpawnForPieces(t *testing.T) {
	source := newTestItem(t, 4, kernel.Money(250))
	source.GeneratePieces(4)
	source.FlagStain("ink on collar")
	moved := []*order.Piece{source.Pieces()[1], source.Pieces()[3]}

	spawned := source.SpawnForPieces(moved)

	assert.True(t, spawned.ProductID().IsEqual(source.ProductID()))
	assert.Equal(t, 2, spawned.Quantity())
	assert.Equal(t, int64(500), spawned.TotalPrice().Cents())
	assert.True(t, spawned.HasStain())
	assert.Equal(t, "ink on collar", spawned.StainNotes())
	require.Len(t, spawned.Pieces(), 2)
	assert.Equal(t, 1, spawned.Pieces()[0].Seq())
	assert.Equal(t, 2, spawned.Pieces()[1].Seq())
}

func TestItem_ConditionFlags(t *testing.T) {
	item := newTestItem(t, 1, kernel.Money(100))

	item.FlagStain("red wine")
	item.FlagDamage("missing button")

	assert.True(t, item.HasStain())
	assert.Equal(t, "red wine", item.StainNotes())
	assert.True(t, item.HasDamage())
	assert.Equal(t, "missing button", item.DamageNotes())
}
