package rota

import "github.com/carebridge-dev/rota-manager/backend/internal/domain"

// EvaluationContext carries the state an assignment is evaluated against. The
// calling layer fetches it up front: time off and shifts for the staff member
// covering shift.Date-1 .. shift.Date+1.
type EvaluationContext struct {
	ApprovedTimeOff []*domain.TimeOffRequest
	UserShifts      []*domain.Shift
	DailyHourLimit  float64
}

// EvaluateAssignment decides whether userID can take shift. Checks run in a
// fixed order and the first hit wins: approved time off, then overlapping
// shifts, then the daily hour limit. The same function backs both the
// pre-flight assignment check and the read-only conflict scan, so the two can
// never disagree.
func EvaluateAssignment(shift *domain.Shift, userID int64, ec EvaluationContext) domain.ConflictResult {
	for _, req := range ec.ApprovedTimeOff {
		if req.Status != domain.TimeOffApproved || req.UserID != userID {
			continue
		}
		if req.Covers(shift.Date) {
			return domain.NewTimeOffConflict(req)
		}
	}

	if other := FirstOverlappingShift(IntervalOf(shift), ec.UserShifts, shift.ID); other != nil {
		return domain.NewOverlappingShiftConflict(other)
	}

	if attempted := dailyHours(shift, ec.UserShifts); attempted > ec.DailyHourLimit {
		return domain.NewMaxHoursExceededConflict(attempted, ec.DailyHourLimit)
	}

	return domain.NoConflict()
}

// dailyHours sums the candidate and every other active shift the staff member
// holds on the candidate's date.
func dailyHours(shift *domain.Shift, userShifts []*domain.Shift) float64 {
	total := IntervalOf(shift).DurationHours()
	for _, s := range userShifts {
		if s.ID == shift.ID || !s.IsActive || s.Date != shift.Date {
			continue
		}
		total += IntervalOf(s).DurationHours()
	}
	return total
}
