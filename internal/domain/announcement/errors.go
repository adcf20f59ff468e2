package announcement

import "errors"

var (
	ErrAnnouncementNotFound = errors.New("Announcement not found")
)
