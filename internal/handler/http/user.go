package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}

// Create implements UserHandler.
func (h *UserHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.userService.Create(r.Context(), req)
	if err != nil {
		slog.Error("CreateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created", created)
}

// Get implements UserHandler.
func (h *UserHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.userService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements UserHandler.
func (h *UserHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := user.ListUsersFilter{
		Search: optionalQuery(r, "search"),
		Role:   optionalQuery(r, "role"),
		Status: optionalQuery(r, "status"),
		Page:   page,
		Limit:  limit,
	}

	users, total, err := h.userService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListUsers service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, users, response.NewMeta(page, limit, total))
}

// Update implements UserHandler.
func (h *UserHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req user.UpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.userService.Update(r.Context(), req); err != nil {
		slog.Error("UpdateUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User updated", nil)
}

// SetStatus implements UserHandler.
func (h *UserHandlerImpl) SetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	status := user.Status(body.Status)
	if status != user.StatusActive && status != user.StatusInactive {
		response.BadRequest(w, "status must be one of: active, inactive", nil)
		return
	}

	if err := h.userService.SetStatus(r.Context(), chi.URLParam(r, "id"), status); err != nil {
		slog.Error("SetUserStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User status updated", nil)
}

// Delete implements UserHandler.
func (h *UserHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		slog.Error("DeleteUser service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deleted", nil)
}
