package announcement

import "context"

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, authorID string, req CreateAnnouncementRequest) (AnnouncementResponse, error)
	GetAnnouncement(ctx context.Context, id string) (AnnouncementResponse, error)
	ListAnnouncements(ctx context.Context, filter ListAnnouncementsFilter) ([]AnnouncementResponse, int64, error)
	UpdateAnnouncement(ctx context.Context, req UpdateAnnouncementRequest) error
	SetAnnouncementStatus(ctx context.Context, id string, status Status) error
	DeleteAnnouncement(ctx context.Context, id string) error
}
