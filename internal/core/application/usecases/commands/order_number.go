package commands

import (
	"fmt"
	"time"
)

// orderNumber formats the human-readable order number from the intake day and
// the tenant's per-day sequence: ORD-YYYYMMDD-NNNN.
func orderNumber(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), seq)
}

// childOrderNumber derives a split child's number from its parent's number
// and the child's 1-based ordinal across all of the parent's splits.
func childOrderNumber(parent string, n int) string {
	return fmt.Sprintf("%s-S%d", parent, n)
}
