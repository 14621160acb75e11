// internal/lease/period.go
package lease

import (
	"math"
	"time"
)

// DurationKind tells whether the lease term is entered in months or in days.
type DurationKind string

const (
	DurationMonths DurationKind = "months"
	DurationDays   DurationKind = "days"
)

// Period holds the lease term exactly as the user entered it.
// Start may be zero and Value may be non-positive: that is not an error,
// it means the form is not filled in yet.
type Period struct {
	Start time.Time    `json:"start"`
	Kind  DurationKind `json:"kind"`
	Value int          `json:"value"`
}

// ComputeEnd derives the contract end date. The second result is false when
// the inputs are incomplete and no end date can be derived.
func ComputeEnd(start time.Time, kind DurationKind, value int) (time.Time, bool) {
	if start.IsZero() || value <= 0 {
		return time.Time{}, false
	}
	switch kind {
	case DurationDays:
		return start.AddDate(0, 0, value), true
	case DurationMonths:
		return start.AddDate(0, value, 0), true
	default:
		return time.Time{}, false
	}
}

// ComputeDurationMonths converts the interval (start, end) to a whole number
// of months: elapsed days divided by 30 and rounded to the nearest integer,
// with a floor of 1 for any positive interval. A zero or negative interval
// yields 0, which downstream stages treat as "not ready" rather than an error.
func ComputeDurationMonths(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	days := end.Sub(start).Hours() / 24
	if days <= 0 {
		return 0
	}
	months := int(math.Round(days / 30))
	if months < 1 {
		months = 1
	}
	return months
}

// End is a convenience wrapper over ComputeEnd for a filled-in Period.
func (p Period) End() (time.Time, bool) {
	return ComputeEnd(p.Start, p.Kind, p.Value)
}

// Months returns the contract term in months, or 0 when inputs are incomplete.
func (p Period) Months() int {
	end, ok := p.End()
	if !ok {
		return 0
	}
	return ComputeDurationMonths(p.Start, end)
}
