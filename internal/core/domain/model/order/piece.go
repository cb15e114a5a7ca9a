package order

import (
	"fmt"
	"regexp"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// PieceStatus is the per-piece processing marker for tenants that track
// individual physical units.
type PieceStatus string

const (
	PieceStatusPending   PieceStatus = "pending"
	PieceStatusProcessed PieceStatus = "processed"
	PieceStatusAssembled PieceStatus = "assembled"
)

// maxBarcodeLength bounds stored barcodes.
const maxBarcodeLength = 100

var barcodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Piece represents one physical unit within an order item. The set of
// sequence numbers for an item's pieces is always {1..N}: every insert and
// delete re-sequences so there are no gaps or duplicates.
type Piece struct {
	id           kernel.UUID
	seq          int
	barcode      string
	status       PieceStatus
	rackLocation string
	rejected     bool
	notes        string
}

// newPiece creates a pending piece with the given sequence.
// Sequence assignment is owned by the Item, so this stays package-private.
func newPiece(seq int) *Piece {
	return &Piece{
		id:     kernel.NewUUID(),
		seq:    seq,
		status: PieceStatusPending,
	}
}

// RestorePiece rebuilds a piece from persistence.
func RestorePiece(
	id kernel.UUID, seq int, barcode string, status PieceStatus,
	rackLocation string, rejected bool, notes string,
) *Piece {
	return &Piece{
		id:           id,
		seq:          seq,
		barcode:      barcode,
		status:       status,
		rackLocation: rackLocation,
		rejected:     rejected,
		notes:        notes,
	}
}

func (p *Piece) ID() kernel.UUID { return p.id }
func (p *Piece) Seq() int { return p.seq }
func (p *Piece) Barcode() string { return p.barcode }
func (p *Piece) Status() PieceStatus { return p.status }
func (p *Piece) RackLocation() string { return p.rackLocation }
func (p *Piece) IsRejected() bool { return p.rejected }
func (p *Piece) Notes() string { return p.notes }

// SetBarcode validates and assigns the piece barcode.
// Barcodes are alphanumeric plus hyphen/underscore, at most 100 characters.
func (p *Piece) SetBarcode(barcode string) error {
	if err := ValidateBarcode(barcode); err != nil {
		return err
	}
	p.barcode = barcode
	return nil
}

// SetRackLocation records where the piece is racked.
func (p *Piece) SetRackLocation(location string) {
	p.rackLocation = location
}

// SetStatus moves the piece to a new processing marker.
func (p *Piece) SetStatus(status PieceStatus) error {
	switch status {
	case PieceStatusPending, PieceStatusProcessed, PieceStatusAssembled:
		p.status = status
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("pieceStatus",
			fmt.Errorf("%q is not a valid piece status", string(status)))
	}
}

// SetRejected flags or clears the piece rejection marker.
func (p *Piece) SetRejected(rejected bool) {
	p.rejected = rejected
}

// SetNotes records per-piece condition notes.
func (p *Piece) SetNotes(notes string) {
	p.notes = notes
}

// ValidateBarcode checks barcode syntax without assigning it.
func ValidateBarcode(barcode string) error {
	if barcode == "" {
		return errs.NewValueIsRequiredError("barcode")
	}
	if len(barcode) > maxBarcodeLength {
		return errs.NewValueIsOutOfRangeError("barcode length", len(barcode), 1, maxBarcodeLength)
	}
	if !barcodePattern.MatchString(barcode) {
		return errs.NewValueIsInvalidErrorWithCause("barcode",
			fmt.Errorf("%q contains characters outside [A-Za-z0-9_-]", barcode))
	}
	return nil
}

// ValidateSequence rejects a sequence below 1 or one already taken by another
// piece of the same item.
func ValidateSequence(pieces []*Piece, seq int) error {
	if seq < 1 {
		return errs.NewValueIsOutOfRangeError("sequence", seq, 1, len(pieces)+1)
	}
	for _, p := range pieces {
		if p.seq == seq {
			return errs.NewValueIsInvalidErrorWithCause("sequence",
				fmt.Errorf("sequence %d already present", seq))
		}
	}
	return nil
}
