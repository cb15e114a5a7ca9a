package services

import (
	"fmt"
	"time"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// maxPolicyRollDays bounds the business-hours roll-forward search. A policy
// whose window cannot be reached within two years is misconfigured.
const maxPolicyRollDays = 731

// BusinessHoursPolicy describes when a tenant's shop is open. The ready-by
// calculation rounds raw targets forward to the next instant inside this
// window.
type BusinessHoursPolicy struct {
	OpenHour    int
	CloseHour   int
	WorkingDays []time.Weekday
	Holidays    []time.Time // compared by calendar date
}

// Validate rejects policies the scheduler could not roll forward against.
func (p *BusinessHoursPolicy) Validate() error {
	if p.OpenHour < 0 || p.OpenHour > 23 {
		return errs.NewValueIsOutOfRangeError("openHour", p.OpenHour, 0, 23)
	}
	if p.CloseHour < 1 || p.CloseHour > 24 {
		return errs.NewValueIsOutOfRangeError("closeHour", p.CloseHour, 1, 24)
	}
	if p.CloseHour <= p.OpenHour {
		return errs.NewValueIsInvalidErrorWithCause("businessHoursPolicy",
			fmt.Errorf("close hour %d is not after open hour %d", p.CloseHour, p.OpenHour))
	}
	if len(p.WorkingDays) == 0 {
		return errs.NewValueIsRequiredError("workingDays")
	}
	return nil
}

func (p *BusinessHoursPolicy) isWorkingDay(t time.Time) bool {
	dayOK := false
	for _, d := range p.WorkingDays {
		if t.Weekday() == d {
			dayOK = true
			break
		}
	}
	if !dayOK {
		return false
	}
	for _, h := range p.Holidays {
		hy, hm, hd := h.Date()
		ty, tm, td := t.Date()
		if hy == ty && hm == tm && hd == td {
			return false
		}
	}
	return true
}

func (p *BusinessHoursPolicy) openingOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, p.OpenHour, 0, 0, 0, t.Location())
}

// nextInWindow rounds t forward to the next instant within business hours:
// before opening snaps to the same day's opening, after closing or on a
// non-working day advances day by day to the next working day's opening.
func (p *BusinessHoursPolicy) nextInWindow(t time.Time) (time.Time, error) {
	for range maxPolicyRollDays {
		switch {
		case !p.isWorkingDay(t):
			t = p.openingOf(t.AddDate(0, 0, 1))
		case t.Hour() < p.OpenHour:
			t = p.openingOf(t)
		case t.Hour() >= p.CloseHour:
			t = p.openingOf(t.AddDate(0, 0, 1))
		default:
			return t, nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause("businessHoursPolicy",
		fmt.Errorf("no working day found within %d days", maxPolicyRollDays))
}

// ReadyByInput carries everything the calculation consumes. Override, when
// set, short-circuits every other input and is returned verbatim.
type ReadyByInput struct {
	ReceivedAt              time.Time
	TurnaroundHours         float64
	CategoryTurnaroundHours *float64
	Priority                order.Priority
	Policy                  *BusinessHoursPolicy
	Override                *time.Time
}

// ReadyByScheduler turns intake time, turnaround, and priority into the
// committed ready-by timestamp. It is a pure calculation: no state, no side
// effects, deterministic for identical inputs.
type ReadyByScheduler struct{}

// NewReadyByScheduler creates the scheduler.
func NewReadyByScheduler() ReadyByScheduler {
	return ReadyByScheduler{}
}

// Calculate computes the ready-by timestamp:
//
//   - the category-specific turnaround, when supplied, overrides the generic one
//   - the priority multiplier (normal 1.0, urgent 0.7, express 0.5) shortens
//     the turnaround before it is added to the received time
//   - a business-hours policy rounds the raw target forward to the next
//     in-window instant
//   - the result is truncated to whole minutes and never precedes ReceivedAt
func (ReadyByScheduler) Calculate(in ReadyByInput) (time.Time, error) {
	if in.Override != nil {
		return *in.Override, nil
	}
	if in.ReceivedAt.IsZero() {
		return time.Time{}, errs.NewValueIsRequiredError("receivedAt")
	}
	if err := in.Priority.Validate(); err != nil {
		return time.Time{}, err
	}

	turnaround := in.TurnaroundHours
	if in.CategoryTurnaroundHours != nil {
		turnaround = *in.CategoryTurnaroundHours
	}
	if turnaround < 0 {
		turnaround = 0
	}

	effective := turnaround * in.Priority.TurnaroundMultiplier()
	target := in.ReceivedAt.Add(time.Duration(effective * float64(time.Hour)))

	if in.Policy != nil {
		if err := in.Policy.Validate(); err != nil {
			return time.Time{}, err
		}
		rolled, err := in.Policy.nextInWindow(target)
		if err != nil {
			return time.Time{}, err
		}
		target = rolled
	}

	target = target.Truncate(time.Minute)
	if target.Before(in.ReceivedAt) {
		target = target.Add(time.Minute)
	}
	return target, nil
}
