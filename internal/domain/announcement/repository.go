package announcement

import "context"

type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	GetByID(ctx context.Context, id string) (Announcement, error)
	List(ctx context.Context, filter ListAnnouncementsFilter) ([]Announcement, int64, error)
	Update(ctx context.Context, req UpdateAnnouncementRequest) error
	SetStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
