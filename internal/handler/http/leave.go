package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/leave"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	UpdateMine(w http.ResponseWriter, r *http.Request)
	CancelMine(w http.ResponseWriter, r *http.Request)
	ReverseMine(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)

	List(w http.ResponseWriter, r *http.Request)
	ListAll(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)

	SetAllocation(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.leaveService.Apply(r.Context(), req)
	if err != nil {
		slog.Error("ApplyLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", entry)
}

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := leave.ListLeaveRequestsFilter{
		Year:   optionalQueryInt(r, "year"),
		Status: optionalQuery(r, "status"),
		Page:   page,
		Limit:  limit,
	}

	resp, err := h.leaveService.ListMine(r.Context(), middleware.UserID(r), filter)
	if err != nil {
		slog.Error("ListMyLeaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// UpdateMine implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateMine(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.UserID = middleware.UserID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.UpdateMine(r.Context(), req); err != nil {
		slog.Error("UpdateLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated", nil)
}

// CancelMine implements LeaveHandler.
func (h *LeaveHandlerImpl) CancelMine(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.CancelMine(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		slog.Error("CancelLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// ReverseMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ReverseMine(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.ReverseMine(r.Context(), middleware.UserID(r), chi.URLParam(r, "id")); err != nil {
		slog.Error("ReverseLeave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reversed", nil)
}

// Summary implements LeaveHandler.
func (h *LeaveHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if y := optionalQueryInt(r, "year"); y != nil {
		year = *y
	}

	summary, err := h.leaveService.GetSummary(r.Context(), middleware.UserID(r), year)
	if err != nil {
		slog.Error("LeaveSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// List implements LeaveHandler.
func (h *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := leave.ListLeaveRequestsFilter{
		UserID: optionalQuery(r, "user_id"),
		Year:   optionalQueryInt(r, "year"),
		Status: optionalQuery(r, "status"),
		Search: optionalQuery(r, "search"),
		Page:   page,
		Limit:  limit,
	}

	resp, total, err := h.leaveService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListLeaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, resp, response.NewMeta(page, limit, total))
}

// ListAll implements LeaveHandler. Unpaginated dump used by the approvals
// board on the management dashboard.
func (h *LeaveHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaveService.ListAllRequests(r.Context())
	if err != nil {
		slog.Error("ListAllLeaves service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Get implements LeaveHandler.
func (h *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.leaveService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}

// Decide implements LeaveHandler. The action comes from the URL so each
// transition gets its own route.
func (h *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	action := leave.Action(chi.URLParam(r, "action"))
	switch action {
	case leave.ActionConfirm, leave.ActionReject, leave.ActionReverse, leave.ActionCancel:
	default:
		response.BadRequest(w, "action must be one of: confirm, reject, reverse, cancel", nil)
		return
	}

	var body struct {
		Notes *string `json:"notes"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	req := leave.DecideLeaveRequest{
		ID:        chi.URLParam(r, "id"),
		DeciderID: middleware.UserID(r),
		Action:    action,
		Notes:     body.Notes,
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.leaveService.Decide(r.Context(), req); err != nil {
		slog.Error("DecideLeave service error", "error", err, "action", action)
		response.HandleError(w, err)
		return
	}

	messages := map[leave.Action]string{
		leave.ActionConfirm: "Leave request approved",
		leave.ActionReject:  "Leave request rejected",
		leave.ActionReverse: "Leave request reversed",
		leave.ActionCancel:  "Leave request cancelled",
	}
	response.SuccessWithMessage(w, messages[action], nil)
}

// SetAllocation implements LeaveHandler.
func (h *LeaveHandlerImpl) SetAllocation(w http.ResponseWriter, r *http.Request) {
	var req leave.AllocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetAllocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	alloc, err := h.leaveService.SetAllocation(r.Context(), req)
	if err != nil {
		slog.Error("SetAllocation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allocation saved for "+strconv.Itoa(req.Year), alloc)
}
