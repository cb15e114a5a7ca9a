package kernel

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Money represents a monetary amount in minor units (cents).
// Integer arithmetic avoids float rounding on order totals.
type Money int64

// NewMoney creates a Money value from minor units. Negative amounts are
// rejected; prices and totals in this domain are never negative.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", cents))
	}
	return Money(cents), nil
}

// MultiplyQty returns the amount multiplied by a quantity.
func (m Money) MultiplyQty(qty int) Money {
	return m * Money(qty)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// String formats the amount as a decimal with two fraction digits.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m/100, m%100)
}
