package domain

import (
	"time"
)

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleHomeManager   Role = "home_manager"
	RoleSeniorStaff   Role = "senior_staff"
	RoleSupportWorker Role = "support_worker"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	HomeIDs      []int64   `json:"homeIDs"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// WorksAt reports whether the user is a member of the given home.
func (u *User) WorksAt(homeID int64) bool {
	for _, id := range u.HomeIDs {
		if id == homeID {
			return true
		}
	}
	return false
}
