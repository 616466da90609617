package domain

import "time"

type ShiftType string

const (
	ShiftTypeMorning   ShiftType = "morning"
	ShiftTypeDay       ShiftType = "day"
	ShiftTypeAfternoon ShiftType = "afternoon"
	ShiftTypeEvening   ShiftType = "evening"
	ShiftTypeNight     ShiftType = "night"
	ShiftTypeOvertime  ShiftType = "overtime"
	ShiftTypeLongDay   ShiftType = "long_day"
	ShiftTypeSplit     ShiftType = "split"
)

type StaffAssignment struct {
	UserID     int64     `json:"userID"`
	AssignedAt time.Time `json:"assignedAt"`
}

// Shift is a concrete dated unit of work at a home. When EndTime <= StartTime
// the shift crosses midnight and runs into the following date.
type Shift struct {
	ID                 int64             `json:"id"`
	HomeID             int64             `json:"homeID"`
	ServiceID          int64             `json:"serviceID"`
	Date               Date              `json:"date"`
	StartTime          TimeOfDay         `json:"startTime"`
	EndTime            TimeOfDay         `json:"endTime"`
	RequiredStaffCount int32             `json:"requiredStaffCount"`
	ShiftType          ShiftType         `json:"shiftType"`
	AssignedStaff      []StaffAssignment `json:"assignedStaff"`
	Notes              string            `json:"notes"`
	IsActive           bool              `json:"isActive"`
	CreatedAt          time.Time         `json:"createdAt"`
	Version            int32             `json:"-"`
}

// IsAssigned reports whether the user already holds an assignment on the shift.
func (s *Shift) IsAssigned(userID int64) bool {
	for _, a := range s.AssignedStaff {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// CrossesMidnight reports whether the shift ends on the day after its date.
func (s *Shift) CrossesMidnight() bool {
	return s.EndTime <= s.StartTime
}
