package rota

import "github.com/carebridge-dev/rota-manager/backend/internal/domain"

// Materialize expands a weekly template into concrete unassigned shifts for
// the 7 days starting at weekStart. Inactive days are skipped. The result is a
// set of candidates; nothing is persisted here, and the caller is expected to
// drop candidates that already exist (see WithoutExisting) so the operation is
// safe to repeat as a fill-gaps pass.
func Materialize(t *domain.WeeklyScheduleTemplate, weekStart domain.Date) []*domain.Shift {
	var shifts []*domain.Shift

	for i := 0; i < 7; i++ {
		date := weekStart.AddDays(i)
		day := t.Schedule[date.Weekday()]
		if !day.IsActive {
			continue
		}

		for _, p := range day.Shifts {
			shifts = append(shifts, &domain.Shift{
				HomeID:             t.HomeID,
				ServiceID:          p.ServiceID,
				Date:               date,
				StartTime:          p.StartTime,
				EndTime:            p.EndTime,
				RequiredStaffCount: p.RequiredStaffCount,
				ShiftType:          p.ShiftType,
				Notes:              p.Notes,
				AssignedStaff:      []domain.StaffAssignment{},
				IsActive:           true,
			})
		}
	}

	return shifts
}

type shiftKey struct {
	homeID    int64
	serviceID int64
	date      domain.Date
	start     domain.TimeOfDay
	end       domain.TimeOfDay
}

func keyOf(s *domain.Shift) shiftKey {
	return shiftKey{
		homeID:    s.HomeID,
		serviceID: s.ServiceID,
		date:      s.Date,
		start:     s.StartTime,
		end:       s.EndTime,
	}
}

// WithoutExisting drops candidates that match an existing shift on
// (home, service, date, start, end). Calling Materialize and persisting the
// remainder is therefore idempotent per week.
func WithoutExisting(candidates []*domain.Shift, existing []*domain.Shift) []*domain.Shift {
	seen := make(map[shiftKey]bool, len(existing))
	for _, s := range existing {
		seen[keyOf(s)] = true
	}

	kept := make([]*domain.Shift, 0, len(candidates))
	for _, c := range candidates {
		if seen[keyOf(c)] {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
