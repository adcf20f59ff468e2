package master

import (
	"context"
	"errors"

	"github.com/kantorkita/hr-backend-go/internal/domain/announcement"
	"github.com/kantorkita/hr-backend-go/internal/domain/position"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/sse"
)

// MasterService bundles position and announcement management.
type MasterServiceImpl struct {
	db *database.DB
	position.PositionRepository
	announcement.AnnouncementRepository
	hub *sse.Hub
}

func NewMasterService(
	db *database.DB,
	positionRepository position.PositionRepository,
	announcementRepository announcement.AnnouncementRepository,
	hub *sse.Hub,
) *MasterServiceImpl {
	return &MasterServiceImpl{
		db:                     db,
		PositionRepository:     positionRepository,
		AnnouncementRepository: announcementRepository,
		hub:                    hub,
	}
}

var _ position.PositionService = (*MasterServiceImpl)(nil)
var _ announcement.AnnouncementService = (*MasterServiceImpl)(nil)

// Create implements position.PositionService.
func (s *MasterServiceImpl) Create(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if _, err := s.PositionRepository.GetByName(ctx, req.Name); err == nil {
		return position.PositionResponse{}, position.ErrPositionNameUsed
	} else if !errors.Is(err, position.ErrPositionNotFound) {
		return position.PositionResponse{}, err
	}

	created, err := s.PositionRepository.Create(ctx, position.Position{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return position.PositionResponse{}, err
	}

	return position.ToResponse(created), nil
}

// Get implements position.PositionService.
func (s *MasterServiceImpl) Get(ctx context.Context, id string) (position.PositionResponse, error) {
	p, err := s.PositionRepository.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return position.ToResponse(p), nil
}

// List implements position.PositionService.
func (s *MasterServiceImpl) List(ctx context.Context) ([]position.PositionResponse, error) {
	positions, err := s.PositionRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, position.ToResponse(p))
	}

	return responses, nil
}

// Update implements position.PositionService.
func (s *MasterServiceImpl) Update(ctx context.Context, req position.UpdatePositionRequest) error {
	return s.PositionRepository.Update(ctx, req)
}

// SetStatus implements position.PositionService.
func (s *MasterServiceImpl) SetStatus(ctx context.Context, id string, status position.Status) error {
	return s.PositionRepository.SetStatus(ctx, id, status)
}

// Delete implements position.PositionService.
func (s *MasterServiceImpl) Delete(ctx context.Context, id string) error {
	return s.PositionRepository.Delete(ctx, id)
}

// CreateAnnouncement publishes an announcement and broadcasts it to every
// connected subscriber.
func (s *MasterServiceImpl) CreateAnnouncement(ctx context.Context, authorID string, req announcement.CreateAnnouncementRequest) (announcement.AnnouncementResponse, error) {
	created, err := s.AnnouncementRepository.Create(ctx, announcement.Announcement{
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: authorID,
	})
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}

	resp := announcement.ToResponse(created)
	if s.hub != nil {
		s.hub.Broadcast(sse.Event{Event: "announcement", Data: resp})
	}

	return resp, nil
}

// GetAnnouncement returns a single announcement.
func (s *MasterServiceImpl) GetAnnouncement(ctx context.Context, id string) (announcement.AnnouncementResponse, error) {
	a, err := s.AnnouncementRepository.GetByID(ctx, id)
	if err != nil {
		return announcement.AnnouncementResponse{}, err
	}
	return announcement.ToResponse(a), nil
}

// ListAnnouncements returns a filtered page of announcements.
func (s *MasterServiceImpl) ListAnnouncements(ctx context.Context, filter announcement.ListAnnouncementsFilter) ([]announcement.AnnouncementResponse, int64, error) {
	announcements, total, err := s.AnnouncementRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]announcement.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, announcement.ToResponse(a))
	}

	return responses, total, nil
}

// UpdateAnnouncement edits an announcement.
func (s *MasterServiceImpl) UpdateAnnouncement(ctx context.Context, req announcement.UpdateAnnouncementRequest) error {
	return s.AnnouncementRepository.Update(ctx, req)
}

// SetAnnouncementStatus toggles an announcement between active and inactive.
func (s *MasterServiceImpl) SetAnnouncementStatus(ctx context.Context, id string, status announcement.Status) error {
	return s.AnnouncementRepository.SetStatus(ctx, id, status)
}

// DeleteAnnouncement removes an announcement.
func (s *MasterServiceImpl) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.AnnouncementRepository.Delete(ctx, id)
}
