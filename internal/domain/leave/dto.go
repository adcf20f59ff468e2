package leave

import (
	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
)

type ApplyLeaveRequest struct {
	UserID    string `json:"-"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startValid := validator.IsValidDate(r.StartDate)
	end, endValid := validator.IsValidDate(r.EndDate)

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequest edits a still-pending request in place.
type UpdateLeaveRequest struct {
	ID        string `json:"-"`
	UserID    string `json:"-"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func (r *UpdateLeaveRequest) Validate() error {
	apply := ApplyLeaveRequest{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Reason:    r.Reason,
	}

	var errs validator.ValidationErrors
	if err := apply.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DecideLeaveRequest carries a manager action on someone else's request.
type DecideLeaveRequest struct {
	ID        string  `json:"-"`
	DeciderID string  `json:"-"`
	Action    Action  `json:"-"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Notes != nil && len(*r.Notes) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListLeaveRequestsFilter struct {
	UserID *string `json:"user_id,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Status *string `json:"status,omitempty"`
	Search *string `json:"search,omitempty"` // matches requester name or reason

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type LeaveRequestEntry struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	UserName         *string  `json:"user_name,omitempty"`
	PositionName     *string  `json:"position_name,omitempty"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	TotalDays        int      `json:"total_days"`
	Reason           string   `json:"reason"`
	Status           string   `json:"status"`
	DeciderName      *string  `json:"decider_name,omitempty"`
	DecidedAt        *string  `json:"decided_at,omitempty"`
	ManagerNotes     *string  `json:"manager_notes,omitempty"`
	SubmittedAt      string   `json:"submitted_at"`
	AvailableActions []Action `json:"available_actions"`
}

type ListLeaveRequestsResponse struct {
	Requests []LeaveRequestEntry `json:"requests"`
	Summary  *SummaryResponse    `json:"summary,omitempty"`
}

type SummaryResponse struct {
	Year          int `json:"year"`
	TotalDays     int `json:"total_days"`
	UsedDays      int `json:"used_days"`
	PendingDays   int `json:"pending_days"`
	RemainingDays int `json:"remaining_days"`
}

type AllocationRequest struct {
	UserID    string `json:"user_id"`
	Year      int    `json:"year"`
	TotalDays int    `json:"total_days"`
}

func (r *AllocationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.TotalDays < 0 || r.TotalDays > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AllocationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Year      int    `json:"year"`
	TotalDays int    `json:"total_days"`
}

// ToEntry renders a request for a manager listing, actions computed from
// the current status.
func ToEntry(lr LeaveRequest, forOwner bool) LeaveRequestEntry {
	entry := LeaveRequestEntry{
		ID:           lr.ID,
		UserID:       lr.UserID,
		UserName:     lr.UserName,
		PositionName: lr.PositionName,
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		TotalDays:    lr.TotalDays,
		Reason:       lr.Reason,
		Status:       string(lr.Status),
		DeciderName:  lr.DeciderName,
		ManagerNotes: lr.ManagerNotes,
		SubmittedAt:  lr.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
	if lr.DecidedAt != nil {
		decidedAt := lr.DecidedAt.Format("2006-01-02 15:04:05")
		entry.DecidedAt = &decidedAt
	}
	if forOwner {
		entry.AvailableActions = AvailableOwnerActions(lr.Status)
	} else {
		entry.AvailableActions = AvailableManagerActions(lr.Status)
	}
	if entry.AvailableActions == nil {
		entry.AvailableActions = []Action{}
	}
	return entry
}
