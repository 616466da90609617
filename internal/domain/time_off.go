package domain

import "time"

type TimeOffStatus string

const (
	TimeOffPending  TimeOffStatus = "pending"
	TimeOffApproved TimeOffStatus = "approved"
	TimeOffRejected TimeOffStatus = "rejected"
)

type TimeOffRequest struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userID"`
	StartDate Date          `json:"startDate"`
	EndDate   Date          `json:"endDate"`
	Status    TimeOffStatus `json:"status"`
	Reason    string        `json:"reason"`
	CreatedAt time.Time     `json:"createdAt"`
	Version   int32         `json:"-"`
}

// Covers reports whether the request spans the given date (inclusive bounds).
func (t *TimeOffRequest) Covers(date Date) bool {
	return !date.Before(t.StartDate) && !date.After(t.EndDate)
}
