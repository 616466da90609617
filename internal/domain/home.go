package domain

import "time"

type Home struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

// Service is a care service delivered at a home (residential, nursing,
// domiciliary and so on). Shifts are raised against a service.
type Service struct {
	ID        int64     `json:"id"`
	HomeID    int64     `json:"homeID"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
