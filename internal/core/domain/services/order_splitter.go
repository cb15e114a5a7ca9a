package services

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// MinSplitReasonLength is the shortest accepted audit reason for a split.
const MinSplitReasonLength = 5

// SplitSpec names what moves onto one child order: whole items, individual
// pieces, or (for quick-drop orders without captured items) a bag count.
type SplitSpec struct {
	ItemIDs           []kernel.UUID
	PieceIDs          []kernel.UUID
	QuickDropQuantity int
}

// OrderSplitter divides one order's items and pieces into child orders under
// the same tenant and customer. Items and pieces are moved, never copied, so
// total quantity across parent and children is conserved, and piece sequences
// are re-normalized within every resulting order.
type OrderSplitter struct{}

// NewOrderSplitter creates the splitter.
func NewOrderSplitter() OrderSplitter {
	return OrderSplitter{}
}

// Split creates one child order per spec and moves the named items/pieces
// onto it. numberFor supplies the child's order number from its 1-based
// index. The reason is mandatory for audit and recorded as a SPLIT history
// entry on the parent and each child.
func (OrderSplitter) Split(
	parent *order.Order,
	specs []SplitSpec,
	actor string,
	at time.Time,
	reason string,
	numberFor func(n int) string,
) ([]*order.Order, error) {
	if err := parent.Validate(); err != nil {
		return nil, err
	}
	if len(reason) < MinSplitReasonLength {
		return nil, errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("split reason must be at least %d characters", MinSplitReasonLength))
	}
	if len(specs) == 0 {
		return nil, errs.NewValueIsRequiredError("split specs")
	}

	children := make([]*order.Order, 0, len(specs))
	for n, spec := range specs {
		if len(spec.ItemIDs) == 0 && len(spec.PieceIDs) == 0 && spec.QuickDropQuantity <= 0 {
			return nil, errs.NewValueIsRequiredError(fmt.Sprintf("specs[%d]", n))
		}

		child, err := parent.NewChildOrder(numberFor(n+1), actor, at, reason)
		if err != nil {
			return nil, err
		}

		for _, itemID := range spec.ItemIDs {
			item, detachErr := parent.DetachItem(itemID)
			if detachErr != nil {
				return nil, detachErr
			}
			if adoptErr := child.AdoptItem(item); adoptErr != nil {
				return nil, adoptErr
			}
		}

		grouped, groupErr := groupPiecesByItem(parent, spec.PieceIDs)
		if groupErr != nil {
			return nil, groupErr
		}
		for itemID, pieceIDs := range grouped {
			source, pieces, detachErr := parent.DetachPieces(itemID, pieceIDs)
			if detachErr != nil {
				return nil, detachErr
			}
			if adoptErr := child.AdoptItem(source.SpawnForPieces(pieces)); adoptErr != nil {
				return nil, adoptErr
			}
			// An item emptied by the move leaves the parent entirely.
			if source.Quantity() == 0 {
				if _, dropErr := parent.DetachItem(source.ID()); dropErr != nil {
					return nil, dropErr
				}
			}
		}

		if spec.QuickDropQuantity > 0 {
			if moveErr := parent.MoveQuickDropQuantity(child, spec.QuickDropQuantity); moveErr != nil {
				return nil, moveErr
			}
		}

		if recordErr := parent.RecordSplit(child.ID(), actor, at, reason); recordErr != nil {
			return nil, recordErr
		}
		children = append(children, child)
	}

	return children, nil
}

// groupPiecesByItem resolves each piece id to its owning item, rejecting
// pieces not found under any of the parent's items.
func groupPiecesByItem(parent *order.Order, pieceIDs []kernel.UUID) (map[kernel.UUID][]kernel.UUID, error) {
	grouped := make(map[kernel.UUID][]kernel.UUID)
	for _, pieceID := range pieceIDs {
		found := false
		for _, item := range parent.Items() {
			for _, piece := range item.Pieces() {
				if piece.ID().IsEqual(pieceID) {
					grouped[item.ID()] = append(grouped[item.ID()], pieceID)
					found = true
				}
			}
		}
		if !found {
			return nil, errs.NewObjectNotFoundError("pieceId", pieceID.String())
		}
	}
	return grouped, nil
}
