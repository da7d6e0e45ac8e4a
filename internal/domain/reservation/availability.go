package reservation

import (
	"sort"
	"time"

	"wheelshare/internal/domain/resource"
)

// Overlaps applies the inclusive rule s1 <= e2 && s2 <= e1. Vehicle bookings
// occupy whole calendar days, so they are compared by UTC date.
func (ts TimeSlot) Overlaps(other TimeSlot, kind resource.Kind) bool {
	s1, e1 := ts.bounds(kind)
	s2, e2 := other.bounds(kind)
	return !s1.After(e2) && !s2.After(e1)
}

func (ts TimeSlot) bounds(kind resource.Kind) (time.Time, time.Time) {
	if kind == resource.KindVehicle {
		return ts.StartDay(), ts.EndDay()
	}
	return ts.start, ts.end
}

// IsRangeFree reports whether candidate collides with no blocking reservation.
func IsRangeFree(existing []*Reservation, candidate TimeSlot) bool {
	return FindConflict(existing, candidate) == nil
}

// FindConflict returns the first blocking reservation overlapping candidate.
func FindConflict(existing []*Reservation, candidate TimeSlot) *Reservation {
	for _, r := range existing {
		if r == nil || !r.status.IsBlocking() {
			continue
		}
		if r.timeSlot.Overlaps(candidate, r.kind) {
			return r
		}
	}
	return nil
}

// BookedRanges lists the windows held by blocking reservations, earliest first.
func BookedRanges(existing []*Reservation) []TimeSlot {
	ranges := make([]TimeSlot, 0, len(existing))
	for _, r := range existing {
		if r == nil || !r.status.IsBlocking() {
			continue
		}
		ranges = append(ranges, r.timeSlot)
	}
	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].start.Before(ranges[j].start)
	})
	return ranges
}
