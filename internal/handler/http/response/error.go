package response

import (
	"errors"
	"net/http"

	"github.com/kantorkita/hr-backend-go/internal/domain/announcement"
	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/domain/auth"
	"github.com/kantorkita/hr-backend-go/internal/domain/leave"
	"github.com/kantorkita/hr-backend-go/internal/domain/position"
	"github.com/kantorkita/hr-backend-go/internal/domain/user"
	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrOAuthEmailUnknown):
		Forbidden(w, "Google account is not linked to any user")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, err.Error())

	// Position domain errors
	case errors.Is(err, position.ErrPositionNotFound):
		NotFound(w, "Position not found")
	case errors.Is(err, position.ErrPositionNameUsed):
		Conflict(w, "Position name already used")
	case errors.Is(err, position.ErrPositionInUse):
		Conflict(w, "Position still assigned to users")

	// Announcement domain errors
	case errors.Is(err, announcement.ErrAnnouncementNotFound):
		NotFound(w, "Announcement not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrActionNotAvailable):
		Conflict(w, "Action not available for current status")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another user")
	case errors.Is(err, leave.ErrRequestNotEditable):
		Conflict(w, "Only pending requests can be updated")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Leave request overlaps an existing one")
	case errors.Is(err, leave.ErrAllocationNotFound):
		NotFound(w, "Leave allocation not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "No clock in recorded today")
	case errors.Is(err, attendance.ErrSickLeaveToday):
		Conflict(w, "Sick leave already reported today")
	case errors.Is(err, attendance.ErrHolidayToday):
		BadRequest(w, "Cannot clock in on a holiday", nil)
	case errors.Is(err, attendance.ErrWeekendToday):
		BadRequest(w, "Cannot clock in on a weekend", nil)
	case errors.Is(err, attendance.ErrInvalidCoordinate):
		BadRequest(w, "Invalid coordinates", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
