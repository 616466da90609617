package domain

import "time"

// ShiftPattern has the shape of a shift but carries no date and no
// assignments. It is a stamp used to materialize concrete shifts.
type ShiftPattern struct {
	ID                 int64     `json:"id"`
	ServiceID          int64     `json:"serviceID"`
	StartTime          TimeOfDay `json:"startTime"`
	EndTime            TimeOfDay `json:"endTime"`
	RequiredStaffCount int32     `json:"requiredStaffCount"`
	ShiftType          ShiftType `json:"shiftType"`
	Notes              string    `json:"notes"`
}

type DaySchedule struct {
	IsActive bool           `json:"isActive"`
	Shifts   []ShiftPattern `json:"shifts"`
}

// WeeklyScheduleTemplate is the recurring per-weekday pattern for one home.
// Schedule is indexed by Weekday (Monday first). Each home has at most one.
type WeeklyScheduleTemplate struct {
	ID        int64          `json:"id"`
	HomeID    int64          `json:"homeID"`
	Schedule  [7]DaySchedule `json:"schedule"`
	CreatedAt time.Time      `json:"createdAt"`
	Version   int32          `json:"-"`
}

// NewDefaultWeeklyScheduleTemplate returns the empty template created on first
// access to a home's rota: every day active, no patterns.
func NewDefaultWeeklyScheduleTemplate(homeID int64) *WeeklyScheduleTemplate {
	t := &WeeklyScheduleTemplate{HomeID: homeID}
	for day := range t.Schedule {
		t.Schedule[day] = DaySchedule{IsActive: true, Shifts: []ShiftPattern{}}
	}
	return t
}
