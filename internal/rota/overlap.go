package rota

import "github.com/carebridge-dev/rota-manager/backend/internal/domain"

// overlapHalfOpen is the standard half-open interval test on a shared minute
// axis: [aStart, aEnd) and [bStart, bEnd) intersect unless one ends before the
// other begins. Adjacent intervals (aEnd == bStart) do not overlap.
func overlapHalfOpen(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Overlaps reports whether two dated intervals occupy intersecting wall-clock
// time. A midnight-crossing interval physically occupies two calendar dates,
// so three date relationships have to be checked; missing any one of them
// silently double-books staff:
//
//  1. same date: compare on the effective axis (ends pushed past 1440 when
//     the interval crosses midnight);
//  2. a is dated the day before b and crosses midnight: a's spillover
//     [0, a.End) lies on b's date;
//  3. b is dated the day before a and crosses midnight: the mirror case.
//
// The test is symmetric: Overlaps(a, b) == Overlaps(b, a).
func Overlaps(a, b ShiftInterval) bool {
	switch {
	case a.Date == b.Date:
		return overlapHalfOpen(a.Start.Minutes(), a.effectiveEnd(), b.Start.Minutes(), b.effectiveEnd())
	case a.Date.AddDays(1) == b.Date && a.CrossesMidnight():
		return overlapHalfOpen(0, a.End.Minutes(), b.Start.Minutes(), b.effectiveEnd())
	case b.Date.AddDays(1) == a.Date && b.CrossesMidnight():
		return overlapHalfOpen(a.Start.Minutes(), a.effectiveEnd(), 0, b.End.Minutes())
	default:
		return false
	}
}

// Overlapping returns every interval in existing that overlaps the candidate.
func Overlapping(candidate ShiftInterval, existing []ShiftInterval) []ShiftInterval {
	var out []ShiftInterval
	for _, e := range existing {
		if Overlaps(candidate, e) {
			out = append(out, e)
		}
	}
	return out
}

// FirstOverlappingShift returns the first active shift whose interval overlaps
// the candidate interval, or nil. excludeShiftID skips the shift being edited
// so a shift never conflicts with itself.
func FirstOverlappingShift(candidate ShiftInterval, shifts []*domain.Shift, excludeShiftID int64) *domain.Shift {
	for _, s := range shifts {
		if s.ID == excludeShiftID || !s.IsActive {
			continue
		}
		if Overlaps(candidate, IntervalOf(s)) {
			return s
		}
	}
	return nil
}
