package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

func pattern(t *testing.T, serviceID int64, start, end string, staff int32) domain.ShiftPattern {
	t.Helper()

	s, err := domain.ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := domain.ParseTimeOfDay(end)
	require.NoError(t, err)

	return domain.ShiftPattern{
		ServiceID:          serviceID,
		StartTime:          s,
		EndTime:            e,
		RequiredStaffCount: staff,
		ShiftType:          domain.ShiftTypeDay,
	}
}

func TestValidateWeeklySchedule(t *testing.T) {
	t.Run("empty default template is valid", func(t *testing.T) {
		tpl := domain.NewDefaultWeeklyScheduleTemplate(1)
		assert.NoError(t, ValidateWeeklySchedule(tpl))
	})

	t.Run("night pattern crossing midnight is valid", func(t *testing.T) {
		tpl := domain.NewDefaultWeeklyScheduleTemplate(1)
		tpl.Schedule[domain.Monday].Shifts = []domain.ShiftPattern{pattern(t, 1, "20:00", "08:00", 1)}
		assert.NoError(t, ValidateWeeklySchedule(tpl))
	})

	t.Run("equal start and end is rejected", func(t *testing.T) {
		tpl := domain.NewDefaultWeeklyScheduleTemplate(1)
		tpl.Schedule[domain.Tuesday].Shifts = []domain.ShiftPattern{pattern(t, 1, "09:00", "09:00", 1)}
		assert.Error(t, ValidateWeeklySchedule(tpl))
	})

	t.Run("zero staff count is rejected", func(t *testing.T) {
		tpl := domain.NewDefaultWeeklyScheduleTemplate(1)
		tpl.Schedule[domain.Monday].Shifts = []domain.ShiftPattern{pattern(t, 1, "09:00", "17:00", 0)}
		assert.Error(t, ValidateWeeklySchedule(tpl))
	})

	t.Run("duplicate pattern on one day is rejected", func(t *testing.T) {
		tpl := domain.NewDefaultWeeklyScheduleTemplate(1)
		tpl.Schedule[domain.Friday].Shifts = []domain.ShiftPattern{
			pattern(t, 1, "09:00", "17:00", 2),
			pattern(t, 1, "09:00", "17:00", 1),
		}
		assert.Error(t, ValidateWeeklySchedule(tpl))
	})

	t.Run("same times for different services are allowed", func(t *testing.T) {
		tpl := domain.NewDefaultWeeklyScheduleTemplate(1)
		tpl.Schedule[domain.Friday].Shifts = []domain.ShiftPattern{
			pattern(t, 1, "09:00", "17:00", 2),
			pattern(t, 2, "09:00", "17:00", 1),
		}
		assert.NoError(t, ValidateWeeklySchedule(tpl))
	})
}
