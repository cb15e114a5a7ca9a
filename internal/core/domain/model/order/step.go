package order

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
)

// StepCode is one entry in the fixed five-stage processing vocabulary.
type StepCode string

const (
	StepSorting      StepCode = "sorting"
	StepPretreatment StepCode = "pretreatment"
	StepWashing      StepCode = "washing"
	StepDrying       StepCode = "drying"
	StepFinishing    StepCode = "finishing"
)

// stepSequences maps each step code to its fixed position 1..5.
var stepSequences = map[StepCode]int{
	StepSorting:      1,
	StepPretreatment: 2,
	StepWashing:      3,
	StepDrying:       4,
	StepFinishing:    5,
}

// Seq returns the fixed 1..5 sequence of the step, or 0 for an unknown code.
func (s StepCode) Seq() int {
	return stepSequences[s]
}

// Validate checks the code belongs to the fixed vocabulary.
func (s StepCode) Validate() error {
	if _, ok := stepSequences[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stepCode",
			fmt.Errorf("%q is not a valid processing step", string(s)))
	}
	return nil
}

// StepRecord is one append-only entry in an item's processing log.
// Records are never mutated after creation.
type StepRecord struct {
	id     kernel.UUID
	itemID kernel.UUID
	code   StepCode
	seq    int
	actor  string
	at     time.Time
	notes  string
}

// NewStepRecord creates a processing log entry for an item.
func NewStepRecord(itemID kernel.UUID, code StepCode, actor string, at time.Time, notes string) (StepRecord, error) {
	if err := itemID.Validate(); err != nil {
		return StepRecord{}, err
	}
	if err := code.Validate(); err != nil {
		return StepRecord{}, err
	}
	if actor == "" {
		return StepRecord{}, errs.NewValueIsRequiredError("actor")
	}
	return StepRecord{
		id:     kernel.NewUUID(),
		itemID: itemID,
		code:   code,
		seq:    code.Seq(),
		actor:  actor,
		at:     at,
		notes:  notes,
	}, nil
}

// RestoreStepRecord rebuilds a log entry from persistence.
func RestoreStepRecord(
	id, itemID kernel.UUID, code StepCode, seq int, actor string, at time.Time, notes string,
) StepRecord {
	return StepRecord{id: id, itemID: itemID, code: code, seq: seq, actor: actor, at: at, notes: notes}
}

func (r StepRecord) ID() kernel.UUID { return r.id }
func (r StepRecord) ItemID() kernel.UUID { return r.itemID }
func (r StepRecord) Code() StepCode { return r.code }
func (r StepRecord) Seq() int { return r.seq }
func (r StepRecord) Actor() string { return r.actor }
func (r StepRecord) At() time.Time { return r.at }
func (r StepRecord) Notes() string { return r.notes }
