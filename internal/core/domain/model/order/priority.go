package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Priority expresses how fast an order is promised back to the customer.
// It shortens the effective turnaround when the ready-by timestamp is
// calculated.
type Priority string

const (
	PriorityNormal  Priority = "normal"
	PriorityUrgent  Priority = "urgent"
	PriorityExpress Priority = "express"
)

// Validate checks the priority is one of the known values.
func (p Priority) Validate() error {
	switch p {
	case PriorityNormal, PriorityUrgent, PriorityExpress:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%q is not a valid priority", string(p)))
	}
}

// TurnaroundMultiplier returns the factor applied to the configured
// turnaround hours: urgent and express orders are promised back sooner.
func (p Priority) TurnaroundMultiplier() float64 {
	switch p {
	case PriorityUrgent:
		return 0.7
	case PriorityExpress:
		return 0.5
	default:
		return 1.0
	}
}

func (p Priority) String() string {
	return string(p)
}
