package rota

import (
	"testing"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testShift(t *testing.T, id int64, date domain.Date, start, end string, assignees ...int64) *domain.Shift {
	t.Helper()

	s := &domain.Shift{
		ID:        id,
		HomeID:    1,
		ServiceID: 1,
		Date:      date,
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		IsActive:  true,
	}
	for _, userID := range assignees {
		s.AssignedStaff = append(s.AssignedStaff, domain.StaffAssignment{UserID: userID})
	}
	return s
}

func TestEvaluateAssignmentTimeOff(t *testing.T) {
	jan5 := domain.NewDate(2024, 1, 5)
	shift := testShift(t, 1, jan5, "09:00", "17:00")

	tests := []struct {
		name     string
		request  domain.TimeOffRequest
		conflict bool
	}{
		{
			name: "approved request covering the date",
			request: domain.TimeOffRequest{
				UserID:    42,
				StartDate: domain.NewDate(2024, 1, 4),
				EndDate:   domain.NewDate(2024, 1, 6),
				Status:    domain.TimeOffApproved,
			},
			conflict: true,
		},
		{
			name: "approved request starting on the shift date",
			request: domain.TimeOffRequest{
				UserID:    42,
				StartDate: jan5,
				EndDate:   domain.NewDate(2024, 1, 10),
				Status:    domain.TimeOffApproved,
			},
			conflict: true,
		},
		{
			name: "pending request never conflicts",
			request: domain.TimeOffRequest{
				UserID:    42,
				StartDate: domain.NewDate(2024, 1, 4),
				EndDate:   domain.NewDate(2024, 1, 6),
				Status:    domain.TimeOffPending,
			},
			conflict: false,
		},
		{
			name: "approved request ending the day before",
			request: domain.TimeOffRequest{
				UserID:    42,
				StartDate: domain.NewDate(2024, 1, 1),
				EndDate:   domain.NewDate(2024, 1, 4),
				Status:    domain.TimeOffApproved,
			},
			conflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateAssignment(shift, 42, EvaluationContext{
				ApprovedTimeOff: []*domain.TimeOffRequest{&tt.request},
				DailyHourLimit:  24,
			})
			if tt.conflict {
				assert.Equal(t, domain.ConflictTimeOff, result.Type)
				assert.Equal(t, &tt.request, result.TimeOff)
			} else {
				assert.False(t, result.HasConflict())
			}
		})
	}
}

func TestEvaluateAssignmentOverlap(t *testing.T) {
	jan5 := domain.NewDate(2024, 1, 5)
	jan6 := domain.NewDate(2024, 1, 6)

	t.Run("same-day overlap is reported with the colliding shift", func(t *testing.T) {
		candidate := testShift(t, 10, jan5, "14:00", "22:00")
		existing := testShift(t, 11, jan5, "09:00", "17:00", 42)

		result := EvaluateAssignment(candidate, 42, EvaluationContext{
			UserShifts:     []*domain.Shift{existing},
			DailyHourLimit: 24,
		})
		assert.Equal(t, domain.ConflictOverlappingShift, result.Type)
		assert.Equal(t, existing, result.ConflictingShift)
	})

	t.Run("previous-day night shift spills into the candidate", func(t *testing.T) {
		candidate := testShift(t, 10, jan6, "01:00", "09:00")
		nightBefore := testShift(t, 11, jan5, "22:00", "02:00", 42)

		result := EvaluateAssignment(candidate, 42, EvaluationContext{
			UserShifts:     []*domain.Shift{nightBefore},
			DailyHourLimit: 24,
		})
		assert.Equal(t, domain.ConflictOverlappingShift, result.Type)
	})

	t.Run("editing a shift does not conflict with itself", func(t *testing.T) {
		candidate := testShift(t, 10, jan5, "09:00", "17:00", 42)

		result := EvaluateAssignment(candidate, 42, EvaluationContext{
			UserShifts:     []*domain.Shift{candidate},
			DailyHourLimit: 24,
		})
		assert.False(t, result.HasConflict())
	})
}

func TestEvaluateAssignmentMaxHours(t *testing.T) {
	jan5 := domain.NewDate(2024, 1, 5)
	existing := testShift(t, 11, jan5, "07:00", "15:00", 42) // 8h
	candidate := testShift(t, 10, jan5, "16:00", "20:00")    // 4h, no overlap

	t.Run("under the limit", func(t *testing.T) {
		result := EvaluateAssignment(candidate, 42, EvaluationContext{
			UserShifts:     []*domain.Shift{existing},
			DailyHourLimit: 12,
		})
		assert.False(t, result.HasConflict())
	})

	t.Run("over the limit reports attempted and limit hours", func(t *testing.T) {
		result := EvaluateAssignment(candidate, 42, EvaluationContext{
			UserShifts:     []*domain.Shift{existing},
			DailyHourLimit: 10,
		})
		assert.Equal(t, domain.ConflictMaxHoursExceeded, result.Type)
		assert.InDelta(t, 12.0, result.AttemptedHours, 1e-9)
		assert.InDelta(t, 10.0, result.LimitHours, 1e-9)
	})

	t.Run("shifts on other days are not counted", func(t *testing.T) {
		dayBefore := testShift(t, 12, jan5.AddDays(-1), "07:00", "19:00", 42)
		result := EvaluateAssignment(candidate, 42, EvaluationContext{
			UserShifts:     []*domain.Shift{dayBefore},
			DailyHourLimit: 12,
		})
		assert.False(t, result.HasConflict())
	})
}

func TestEvaluateAssignmentCheckOrder(t *testing.T) {
	// when both a time-off and an overlap conflict apply, time off wins
	jan5 := domain.NewDate(2024, 1, 5)
	candidate := testShift(t, 10, jan5, "14:00", "22:00")
	overlapping := testShift(t, 11, jan5, "09:00", "17:00", 42)
	timeOff := &domain.TimeOffRequest{
		UserID:    42,
		StartDate: jan5,
		EndDate:   jan5,
		Status:    domain.TimeOffApproved,
	}

	result := EvaluateAssignment(candidate, 42, EvaluationContext{
		ApprovedTimeOff: []*domain.TimeOffRequest{timeOff},
		UserShifts:      []*domain.Shift{overlapping},
		DailyHourLimit:  1,
	})
	assert.Equal(t, domain.ConflictTimeOff, result.Type)
}

func TestEvaluateAssignmentNoConflict(t *testing.T) {
	candidate := testShift(t, 10, domain.NewDate(2024, 1, 5), "09:00", "17:00")

	result := EvaluateAssignment(candidate, 42, EvaluationContext{DailyHourLimit: 12})
	assert.Equal(t, domain.ConflictNone, result.Type)
	assert.False(t, result.HasConflict())
}
