package booking

import (
	"math"
	"time"
)

// AvailabilityChecker answers whether a vehicle is free for a requested
// range. Read-only: safe to call repeatedly while quoting, never takes
// reservation write locks for longer than the overlap scan.
type AvailabilityChecker struct {
	Intervals *IntervalStore
}

// ValidateRange rejects inverted or past-starting ranges.
func ValidateRange(start, end, now time.Time) error {
	if !start.Before(end) {
		return NewInvalidRangeError("start must be before end")
	}
	if start.Before(now) {
		return NewInvalidRangeError("start is in the past")
	}
	return nil
}

// Check returns nil when the vehicle is free for [start, end), or a
// structured invalid-range/conflict error.
func (a *AvailabilityChecker) Check(vehicleID string, start, end, now time.Time) error {
	if err := ValidateRange(start, end, now); err != nil {
		return err
	}
	if conflictID, ok := a.Intervals.Overlaps(vehicleID, start, end); ok {
		return NewConflictError(conflictID)
	}
	return nil
}

// durationDays converts a half-open instant range into whole rental days,
// rounding partial days up, minimum one.
func durationDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
