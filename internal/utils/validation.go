package utils

import (
	"fmt"

	"github.com/carebridge-dev/rota-manager/backend/internal/domain"
)

// ValidateWeeklySchedule rejects templates whose patterns could never
// materialize into valid shifts.
func ValidateWeeklySchedule(tpl *domain.WeeklyScheduleTemplate) error {
	for day := range tpl.Schedule {
		weekday := domain.Weekday(day)

		type patternKey struct {
			serviceID int64
			start     domain.TimeOfDay
			end       domain.TimeOfDay
		}
		seen := make(map[patternKey]bool)

		for i, pattern := range tpl.Schedule[day].Shifts {
			if pattern.StartTime == pattern.EndTime {
				return fmt.Errorf("%s pattern %d has equal start and end times", weekday, i+1)
			}
			if pattern.RequiredStaffCount < 1 {
				return fmt.Errorf("%s pattern %d needs at least one staff member", weekday, i+1)
			}
			if pattern.ShiftType == "" {
				return fmt.Errorf("%s pattern %d has no shift type", weekday, i+1)
			}

			key := patternKey{pattern.ServiceID, pattern.StartTime, pattern.EndTime}
			if seen[key] {
				return fmt.Errorf("%s pattern %d duplicates an earlier pattern for the same service and times", weekday, i+1)
			}
			seen[key] = true
		}
	}

	return nil
}
