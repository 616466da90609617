package domain

import "fmt"

type ConflictType string

const (
	ConflictNone             ConflictType = "none"
	ConflictTimeOff          ConflictType = "time_off"
	ConflictOverlappingShift ConflictType = "overlapping_shift"
	ConflictMaxHoursExceeded ConflictType = "max_hours_exceeded"
)

// ConflictResult is the outcome of evaluating a proposed assignment. Exactly
// one variant is populated: the details field matching Type.
type ConflictResult struct {
	Type             ConflictType    `json:"conflictType"`
	Message          string          `json:"message"`
	TimeOff          *TimeOffRequest `json:"timeOff,omitempty"`
	ConflictingShift *Shift          `json:"conflictingShift,omitempty"`
	AttemptedHours   float64         `json:"attemptedHours,omitempty"`
	LimitHours       float64         `json:"limitHours,omitempty"`
}

func (c ConflictResult) HasConflict() bool {
	return c.Type != ConflictNone
}

func NoConflict() ConflictResult {
	return ConflictResult{Type: ConflictNone}
}

func NewTimeOffConflict(req *TimeOffRequest) ConflictResult {
	return ConflictResult{
		Type:    ConflictTimeOff,
		Message: fmt.Sprintf("staff member has approved time off from %s to %s", req.StartDate, req.EndDate),
		TimeOff: req,
	}
}

func NewOverlappingShiftConflict(shift *Shift) ConflictResult {
	return ConflictResult{
		Type:             ConflictOverlappingShift,
		Message:          fmt.Sprintf("staff member is already assigned to a shift on %s from %s to %s", shift.Date, shift.StartTime, shift.EndTime),
		ConflictingShift: shift,
	}
}

func NewMaxHoursExceededConflict(attempted, limit float64) ConflictResult {
	return ConflictResult{
		Type:           ConflictMaxHoursExceeded,
		Message:        fmt.Sprintf("assignment would bring the day to %.1f hours, above the %.1f hour limit", attempted, limit),
		AttemptedHours: attempted,
		LimitHours:     limit,
	}
}
