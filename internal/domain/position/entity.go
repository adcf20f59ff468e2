package position

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Position struct {
	ID          string
	Name        string
	Description *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	MemberCount int64
}
