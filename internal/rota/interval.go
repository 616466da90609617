// Package rota holds the conflict-detection and template-materialization core.
// Everything in it is a pure function over data supplied by the caller: no
// I/O, no in-process state, safe to run concurrently across homes and weeks.
package rota

import (
	"errors"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

var ErrZeroDuration = errors.New("shift start and end time must differ")

// TimeInterval is a half-open [Start, End) wall-clock range. End <= Start
// means the interval crosses midnight and its effective end for overlap math
// is End + 1440.
type TimeInterval struct {
	Start domain.TimeOfDay
	End   domain.TimeOfDay
}

// NewTimeInterval builds an interval from two "HH:MM" strings. Equal start and
// end is rejected here, before any conflict logic can see it.
func NewTimeInterval(start, end string) (TimeInterval, error) {
	s, err := domain.ParseTimeOfDay(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := domain.ParseTimeOfDay(end)
	if err != nil {
		return TimeInterval{}, err
	}
	if s == e {
		return TimeInterval{}, ErrZeroDuration
	}
	return TimeInterval{Start: s, End: e}, nil
}

func (i TimeInterval) CrossesMidnight() bool {
	return i.End <= i.Start
}

func (i TimeInterval) effectiveEnd() int {
	if i.CrossesMidnight() {
		return i.End.Minutes() + domain.MinutesPerDay
	}
	return i.End.Minutes()
}

func (i TimeInterval) DurationHours() float64 {
	return float64(i.effectiveEnd()-i.Start.Minutes()) / 60
}

// PaidHours applies the unpaid-break deduction: half an hour off shifts of 8
// hours or more, a full hour off shifts of 12 hours or more. Display-only; the
// max-hours conflict check uses DurationHours.
func (i TimeInterval) PaidHours() float64 {
	hours := i.DurationHours()
	switch {
	case hours >= 12:
		return hours - 1
	case hours >= 8:
		return hours - 0.5
	default:
		return hours
	}
}

// ShiftInterval anchors a TimeInterval to a calendar date. A midnight-crossing
// interval occupies [Start, 1440) on Date and [0, End) on the following date.
type ShiftInterval struct {
	Date domain.Date
	TimeInterval
}

// IntervalOf extracts the interval a shift occupies.
func IntervalOf(s *domain.Shift) ShiftInterval {
	return ShiftInterval{
		Date:         s.Date,
		TimeInterval: TimeInterval{Start: s.StartTime, End: s.EndTime},
	}
}
