package attendance

import (
	"github.com/kantorkita/hr-backend-go/internal/pkg/utils"
	"github.com/kantorkita/hr-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	UserID    string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Mode      string  `json:"mode"` // onsite | hybrid
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !utils.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude/longitude out of range",
		})
	}

	if !validator.IsInSlice(r.Mode, []string{string(WorkModeOnsite), string(WorkModeHybrid)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: onsite, hybrid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	UserID    string  `json:"-"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Mode      string  `json:"mode"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if !utils.IsValidCoordinate(r.Latitude, r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude/longitude out of range",
		})
	}

	if !validator.IsInSlice(r.Mode, []string{string(WorkModeOnsite), string(WorkModeHybrid)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "mode",
			Message: "mode must be one of: onsite, hybrid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SickLeaveRequest arrives as multipart form data, the certificate part is
// handled separately by the handler.
type SickLeaveRequest struct {
	UserID          string `json:"-"`
	Description     string `json:"description"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date,omitempty"` // defaults to start_date
	CertificatePath string `json:"-"`
}

func (r *SickLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if len(r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 500 characters",
		})
	}

	_, startValid := validator.IsValidDate(r.StartDate)

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

	if r.EndDate != "" {
		if _, endValid := validator.IsValidDate(r.EndDate); !endValid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startValid && r.EndDate < r.StartDate {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockEntry struct {
	At      string  `json:"at"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Mode    string  `json:"mode"`
}

type SickEntry struct {
	Description    string  `json:"description"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	CertificateURL *string `json:"certificate_url,omitempty"`
}

type RecordEntry struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	UserName     *string     `json:"user_name,omitempty"`
	PositionName *string     `json:"position_name,omitempty"`
	Date         string      `json:"date"`
	ClockIn      *ClockEntry `json:"clock_in,omitempty"`
	ClockOut     *ClockEntry `json:"clock_out,omitempty"`
	SickLeave    *SickEntry  `json:"sick_leave,omitempty"`
}

// TodayStatusResponse is the server-computed summary of the current day.
type TodayStatusResponse struct {
	Date          string       `json:"date"`
	State         DayState     `json:"state"`
	IsWeekend     bool         `json:"is_weekend"`
	IsHoliday     bool         `json:"is_holiday"`
	HolidayName   *string      `json:"holiday_name,omitempty"`
	CanClockIn    bool         `json:"can_clock_in"`
	CanClockOut   bool         `json:"can_clock_out"`
	CanReportSick bool         `json:"can_report_sick"`
	Record        *RecordEntry `json:"record,omitempty"`
}

// DayEntry is one calendar day in the month history.
type DayEntry struct {
	Date        string       `json:"date"`
	Status      DayStatus    `json:"status"`
	IsWeekend   bool         `json:"is_weekend"`
	IsHoliday   bool         `json:"is_holiday"`
	HolidayName *string      `json:"holiday_name,omitempty"`
	Record      *RecordEntry `json:"record,omitempty"`
}

type MonthHistoryResponse struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Days  []DayEntry `json:"days"`
}

type ListAttendanceFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Search    *string `json:"search,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}
