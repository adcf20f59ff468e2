package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/announcement"
	"github.com/kantorkita/hr-backend-go/internal/domain/position"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
)

type MasterHandler interface {
	CreatePosition(w http.ResponseWriter, r *http.Request)
	GetPosition(w http.ResponseWriter, r *http.Request)
	ListPositions(w http.ResponseWriter, r *http.Request)
	UpdatePosition(w http.ResponseWriter, r *http.Request)
	SetPositionStatus(w http.ResponseWriter, r *http.Request)
	DeletePosition(w http.ResponseWriter, r *http.Request)

	CreateAnnouncement(w http.ResponseWriter, r *http.Request)
	GetAnnouncement(w http.ResponseWriter, r *http.Request)
	ListAnnouncements(w http.ResponseWriter, r *http.Request)
	UpdateAnnouncement(w http.ResponseWriter, r *http.Request)
	SetAnnouncementStatus(w http.ResponseWriter, r *http.Request)
	DeleteAnnouncement(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	positionService     position.PositionService
	announcementService announcement.AnnouncementService
}

func NewMasterHandler(positionService position.PositionService, announcementService announcement.AnnouncementService) MasterHandler {
	return &MasterHandlerImpl{
		positionService:     positionService,
		announcementService: announcementService,
	}
}

// CreatePosition implements MasterHandler.
func (h *MasterHandlerImpl) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.CreatePositionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.positionService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreatePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Position created", created)
}

// GetPosition implements MasterHandler.
func (h *MasterHandlerImpl) GetPosition(w http.ResponseWriter, r *http.Request) {
	resp, err := h.positionService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListPositions implements MasterHandler.
func (h *MasterHandlerImpl) ListPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.positionService.List(r.Context())
	if err != nil {
		slog.Error("ListPositions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, positions)
}

// UpdatePosition implements MasterHandler.
func (h *MasterHandlerImpl) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req position.UpdatePositionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePosition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.positionService.Update(r.Context(), req); err != nil {
		slog.Error("UpdatePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position updated", nil)
}

// SetPositionStatus implements MasterHandler.
func (h *MasterHandlerImpl) SetPositionStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	status := position.Status(body.Status)
	if status != position.StatusActive && status != position.StatusInactive {
		response.BadRequest(w, "status must be one of: active, inactive", nil)
		return
	}

	if err := h.positionService.SetStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		slog.Error("SetPositionStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position status updated", nil)
}

// DeletePosition implements MasterHandler.
func (h *MasterHandlerImpl) DeletePosition(w http.ResponseWriter, r *http.Request) {
	if err := h.positionService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeletePosition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Position deleted", nil)
}

// CreateAnnouncement implements MasterHandler.
func (h *MasterHandlerImpl) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcement.CreateAnnouncementRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAnnouncement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.announcementService.CreateAnnouncement(r.Context(), middleware.UserID(r), req)
	if err != nil {
		slog.Error("CreateAnnouncement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Announcement published", created)
}

// GetAnnouncement implements MasterHandler.
func (h *MasterHandlerImpl) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	resp, err := h.announcementService.GetAnnouncement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListAnnouncements implements MasterHandler.
func (h *MasterHandlerImpl) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := announcement.ListAnnouncementsFilter{
		Search: optionalQuery(r, "search"),
		Page:   page,
		Limit:  limit,
	}

	announcements, total, err := h.announcementService.ListAnnouncements(r.Context(), filter)
	if err != nil {
		slog.Error("ListAnnouncements service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, announcements, response.NewMeta(page, limit, total))
}

// UpdateAnnouncement implements MasterHandler.
func (h *MasterHandlerImpl) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcement.UpdateAnnouncementRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAnnouncement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.announcementService.UpdateAnnouncement(r.Context(), req); err != nil {
		slog.Error("UpdateAnnouncement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement updated", nil)
}

// SetAnnouncementStatus implements MasterHandler.
func (h *MasterHandlerImpl) SetAnnouncementStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	status := announcement.Status(body.Status)
	if status != announcement.StatusActive && status != announcement.StatusInactive {
		response.BadRequest(w, "status must be one of: active, inactive", nil)
		return
	}

	if err := h.announcementService.SetAnnouncementStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		slog.Error("SetAnnouncementStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement status updated", nil)
}

// DeleteAnnouncement implements MasterHandler.
func (h *MasterHandlerImpl) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.announcementService.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteAnnouncement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcement deleted", nil)
}
