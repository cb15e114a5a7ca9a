package services

import (
	"context"
	"fmt"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/workflow"
	"laundry/internal/pkg/errs"
)

// UnresolvedIssueCounter reads the committed count of unresolved issues for
// an order. The gate must see committed state, not a cached flag, so the
// evaluator queries at evaluation time.
type UnresolvedIssueCounter interface {
	CountUnresolvedByOrder(ctx context.Context, orderID kernel.UUID) (int64, error)
}

// GateEvaluator checks the named quality gates attached to a workflow edge.
// All gates on an edge must pass (conjunction); an unknown gate name fails
// closed rather than silently passing.
type GateEvaluator struct {
	issues UnresolvedIssueCounter
}

// NewGateEvaluator creates an evaluator backed by the issue store.
func NewGateEvaluator(issues UnresolvedIssueCounter) GateEvaluator {
	return GateEvaluator{issues: issues}
}

// EvaluateAll checks every gate in order and returns the first failure,
// naming the failing gate. A nil error means the transition may proceed.
func (e GateEvaluator) EvaluateAll(ctx context.Context, gates []string, o *order.Order) error {
	for _, gate := range gates {
		if err := e.Evaluate(ctx, gate, o); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate checks a single named gate against the order's current state.
func (e GateEvaluator) Evaluate(ctx context.Context, gate string, o *order.Order) error {
	switch gate {
	case workflow.GateAllItemsProcessed:
		for _, item := range o.Items() {
			if !item.IsProcessed() {
				return errs.NewGateNotSatisfiedError(gate,
					fmt.Sprintf("item %s has not completed finishing", item.ID()))
			}
		}
		return nil

	case workflow.GateAllItemsAssembled:
		for _, item := range o.Items() {
			if item.Status() != order.ItemStatusAssembled && item.Status() != order.ItemStatusCompleted {
				return errs.NewGateNotSatisfiedError(gate,
					fmt.Sprintf("item %s is %s", item.ID(), item.Status()))
			}
		}
		return nil

	case workflow.GateAllPiecesScanned:
		for _, item := range o.Items() {
			for _, piece := range item.Pieces() {
				if piece.Barcode() == "" {
					return errs.NewGateNotSatisfiedError(gate,
						fmt.Sprintf("piece %d of item %s has no barcode", piece.Seq(), item.ID()))
				}
			}
		}
		return nil

	case workflow.GateQAPassed:
		if o.IsRejected() {
			return errs.NewGateNotSatisfiedError(gate, "order is rejected")
		}
		for _, item := range o.Items() {
			for _, piece := range item.Pieces() {
				if piece.IsRejected() {
					return errs.NewGateNotSatisfiedError(gate,
						fmt.Sprintf("piece %d of item %s is rejected", piece.Seq(), item.ID()))
				}
			}
		}
		return nil

	case workflow.GateNoUnresolvedIssues:
		count, err := e.issues.CountUnresolvedByOrder(ctx, o.ID())
		if err != nil {
			return err
		}
		if count > 0 {
			return errs.NewGateNotSatisfiedError(gate,
				fmt.Sprintf("%d unresolved issue(s)", count))
		}
		return nil

	default:
		return errs.NewGateNotSatisfiedError(gate, "unknown gate")
	}
}
