package announcement

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

type Announcement struct {
	ID          string
	Title       string
	Body        string
	PublishedAt time.Time
	CreatedBy   string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	AuthorName *string
}
