package order

import (
	"errors"
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// ItemStatus tracks an item's own progress independent of the order status.
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusInProcess ItemStatus = "in_process"
	ItemStatusAssembled ItemStatus = "assembled"
	ItemStatusCompleted ItemStatus = "completed"
)

// MaxPieceBatchSize caps one batch piece update.
const MaxPieceBatchSize = 100

var (
	// ErrItemIsNotConstructed is returned when an Item was not created through
	// NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")
)

// Item is one line of an order: a product, a quantity, pricing, condition
// flags, and optionally the individual physical pieces when the tenant tracks
// them. Items own their pieces and their processing step log exclusively.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	quantity  int

	unitPrice       kernel.Money
	totalPrice      kernel.Money
	priceOverridden bool
	overrideReason  string

	hasStain    bool
	stainNotes  string
	hasDamage   bool
	damageNotes string

	status   ItemStatus
	lastStep StepCode

	pieces []*Piece
	steps  []StepRecord

	isConstructed bool
}

// NewItem creates an item with total price derived from unit price and
// quantity. Quantity must be positive.
func NewItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (*Item, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	return &Item{
		id:            kernel.NewUUID(),
		productID:     productID,
		quantity:      quantity,
		unitPrice:     unitPrice,
		totalPrice:    unitPrice.MultiplyQty(quantity),
		status:        ItemStatusPending,
		isConstructed: true,
	}, nil
}

// RestoreItem rebuilds an item from persistence without re-deriving prices.
func RestoreItem(
	id, productID kernel.UUID,
	quantity int,
	unitPrice, totalPrice kernel.Money,
	priceOverridden bool, overrideReason string,
	hasStain bool, stainNotes string,
	hasDamage bool, damageNotes string,
	status ItemStatus, lastStep StepCode,
	pieces []*Piece, steps []StepRecord,
) *Item {
	return &Item{
		id:              id,
		productID:       productID,
		quantity:        quantity,
		unitPrice:       unitPrice,
		totalPrice:      totalPrice,
		priceOverridden: priceOverridden,
		overrideReason:  overrideReason,
		hasStain:        hasStain,
		stainNotes:      stainNotes,
		hasDamage:       hasDamage,
		damageNotes:     damageNotes,
		status:          status,
		lastStep:        lastStep,
		pieces:          pieces,
		steps:           steps,
		isConstructed:   true,
	}
}

// Validate ensures the item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) ProductID() kernel.UUID { return i.productID }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i *Item) TotalPrice() kernel.Money { return i.totalPrice }
func (i *Item) IsPriceOverridden() bool { return i.priceOverridden }
func (i *Item) OverrideReason() string { return i.overrideReason }
func (i *Item) HasStain() bool { return i.hasStain }
func (i *Item) StainNotes() string { return i.stainNotes }
func (i *Item) HasDamage() bool { return i.hasDamage }
func (i *Item) DamageNotes() string { return i.damageNotes }
func (i *Item) Status() ItemStatus { return i.status }
func (i *Item) LastStep() StepCode { return i.lastStep }
func (i *Item) Pieces() []*Piece { return i.pieces }
func (i *Item) Steps() []StepRecord { return i.steps }

// OverrideTotalPrice replaces the derived total. The reason is mandatory:
// overrides without an audit trail are rejected.
func (i *Item) OverrideTotalPrice(total kernel.Money, reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("override reason")
	}
	i.totalPrice = total
	i.priceOverridden = true
	i.overrideReason = reason
	return nil
}

// FlagStain records a stain condition with its notes.
func (i *Item) FlagStain(notes string) {
	i.hasStain = true
	i.stainNotes = notes
}

// FlagDamage records a damage condition with its notes.
func (i *Item) FlagDamage(notes string) {
	i.hasDamage = true
	i.damageNotes = notes
}

// RecordStep appends a processing step to the item's log. Step sequences are
// strictly increasing per item, so repeating or rewinding a step is rejected.
func (i *Item) RecordStep(code StepCode, actor string, at time.Time, notes string) error {
	record, err := NewStepRecord(i.id, code, actor, at, notes)
	if err != nil {
		return err
	}
	if record.Seq() <= i.lastStep.Seq() {
		return errs.NewValueIsInvalidErrorWithCause("stepCode",
			fmt.Errorf("step %q (seq %d) does not advance past %q (seq %d)",
				code, record.Seq(), i.lastStep, i.lastStep.Seq()))
	}

	i.steps = append(i.steps, record)
	i.lastStep = code
	if i.status == ItemStatusPending {
		i.status = ItemStatusInProcess
	}
	return nil
}

// IsProcessed reports whether the finishing step has been recorded.
func (i *Item) IsProcessed() bool {
	return i.lastStep == StepFinishing
}

// MarkAssembled marks the item assembled. Requires processing to be finished.
func (i *Item) MarkAssembled() error {
	if !i.IsProcessed() {
		return errs.NewValueIsInvalidErrorWithCause("itemStatus",
			fmt.Errorf("item %s has not completed finishing", i.id))
	}
	i.status = ItemStatusAssembled
	return nil
}

// Complete marks the item completed. Completion of the finishing step is a
// hard precondition.
func (i *Item) Complete() error {
	if !i.IsProcessed() {
		return errs.NewValueIsInvalidErrorWithCause("itemStatus",
			fmt.Errorf("item %s has not completed finishing", i.id))
	}
	i.status = ItemStatusCompleted
	return nil
}

// GeneratePieces replaces the item's pieces with quantity pieces sequenced
// 1..quantity. A non-positive quantity yields an empty set, not an error.
func (i *Item) GeneratePieces(quantity int) {
	if quantity <= 0 {
		i.pieces = nil
		return
	}
	pieces := make([]*Piece, 0, quantity)
	for seq := 1; seq <= quantity; seq++ {
		pieces = append(pieces, newPiece(seq))
	}
	i.pieces = pieces
}

// AddPiece appends one piece with sequence max+1 (1 if none exist).
func (i *Item) AddPiece() *Piece {
	maxSeq := 0
	for _, p := range i.pieces {
		if p.seq > maxSeq {
			maxSeq = p.seq
		}
	}
	piece := newPiece(maxSeq + 1)
	i.pieces = append(i.pieces, piece)
	return piece
}

// RemovePiece deletes the piece and re-sequences the remainder to 1..N,
// preserving relative order.
func (i *Item) RemovePiece(pieceID kernel.UUID) error {
	idx := -1
	for n, p := range i.pieces {
		if p.id.IsEqual(pieceID) {
			idx = n
			break
		}
	}
	if idx < 0 {
		return errs.NewObjectNotFoundError("pieceId", pieceID.String())
	}
	i.pieces = append(i.pieces[:idx], i.pieces[idx+1:]...)
	i.resequencePieces()
	return nil
}

// AdjustPiecesToQuantity grows by appending and shrinks by removing from the
// tail until the piece count matches newQuantity. Idempotent when the count
// already matches.
func (i *Item) AdjustPiecesToQuantity(newQuantity int) {
	if newQuantity < 0 {
		newQuantity = 0
	}
	for len(i.pieces) < newQuantity {
		i.AddPiece()
	}
	if len(i.pieces) > newQuantity {
		i.pieces = i.pieces[:newQuantity]
		i.resequencePieces()
	}
}

// PieceUpdate carries the mutable fields of one piece in a batch update.
// Nil fields are left untouched.
type PieceUpdate struct {
	PieceID      kernel.UUID
	Barcode      *string
	Status       *PieceStatus
	RackLocation *string
	Rejected     *bool
	Notes        *string
}

// UpdatePieces applies a batch of piece updates. The whole batch is rejected
// when it is empty, exceeds MaxPieceBatchSize, contains a blank piece id, or
// references a piece absent from this item. Every such error is reported,
// not just the first, and validation runs before any mutation.
func (i *Item) UpdatePieces(updates []PieceUpdate) error {
	if len(updates) == 0 {
		return errs.NewValueIsRequiredError("piece updates")
	}
	if len(updates) > MaxPieceBatchSize {
		return errs.NewValueIsOutOfRangeError("piece updates", len(updates), 1, MaxPieceBatchSize)
	}

	byID := make(map[kernel.UUID]*Piece, len(i.pieces))
	for _, p := range i.pieces {
		byID[p.id] = p
	}

	var batchErrs []error
	for n, u := range updates {
		if err := u.PieceID.Validate(); err != nil {
			batchErrs = append(batchErrs,
				errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("updates[%d].pieceId", n), err))
			continue
		}
		if _, ok := byID[u.PieceID]; !ok {
			batchErrs = append(batchErrs,
				errs.NewObjectNotFoundError(fmt.Sprintf("updates[%d].pieceId", n), u.PieceID.String()))
			continue
		}
		if u.Barcode != nil {
			if err := ValidateBarcode(*u.Barcode); err != nil {
				batchErrs = append(batchErrs, err)
			}
		}
	}
	if len(batchErrs) > 0 {
		return errors.Join(batchErrs...)
	}

	for _, u := range updates {
		piece := byID[u.PieceID]
		if u.Barcode != nil {
			_ = piece.SetBarcode(*u.Barcode) // validated above
		}
		if u.Status != nil {
			if err := piece.SetStatus(*u.Status); err != nil {
				return err
			}
		}
		if u.RackLocation != nil {
			piece.SetRackLocation(*u.RackLocation)
		}
		if u.Rejected != nil {
			piece.SetRejected(*u.Rejected)
		}
		if u.Notes != nil {
			piece.SetNotes(*u.Notes)
		}
	}
	return nil
}

// SpawnForPieces creates a sibling item carrying the given pieces, with the
// same product and unit price and quantity equal to the piece count. Used
// when pieces are split onto a child order.
func (i *Item) SpawnForPieces(pieces []*Piece) *Item {
	spawned := &Item{
		id:            kernel.NewUUID(),
		productID:     i.productID,
		quantity:      len(pieces),
		unitPrice:     i.unitPrice,
		totalPrice:    i.unitPrice.MultiplyQty(len(pieces)),
		hasStain:      i.hasStain,
		stainNotes:    i.stainNotes,
		hasDamage:     i.hasDamage,
		damageNotes:   i.damageNotes,
		status:        i.status,
		lastStep:      i.lastStep,
		pieces:        pieces,
		isConstructed: true,
	}
	spawned.resequencePieces()
	return spawned
}

// detachPieces removes the identified pieces from the item, returning them,
// and re-sequences the remainder. Used by order splitting.
func (i *Item) detachPieces(pieceIDs []kernel.UUID) ([]*Piece, error) {
	wanted := make(map[kernel.UUID]bool, len(pieceIDs))
	for _, id := range pieceIDs {
		wanted[id] = true
	}

	var taken, kept []*Piece
	for _, p := range i.pieces {
		if wanted[p.id] {
			taken = append(taken, p)
			delete(wanted, p.id)
		} else {
			kept = append(kept, p)
		}
	}
	if len(wanted) > 0 {
		for id := range wanted {
			return nil, errs.NewObjectNotFoundError("pieceId", id.String())
		}
	}

	i.pieces = kept
	i.quantity -= len(taken)
	if !i.priceOverridden {
		i.totalPrice = i.unitPrice.MultiplyQty(i.quantity)
	}
	i.resequencePieces()
	return taken, nil
}

// adoptPieces attaches pieces moved from another item and re-sequences to
// 1..N. Used by order splitting.
func (i *Item) adoptPieces(pieces []*Piece) {
	i.pieces = append(i.pieces, pieces...)
	i.resequencePieces()
}

func (i *Item) resequencePieces() {
	for n, p := range i.pieces {
		p.seq = n + 1
	}
}
