package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/middleware"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hr-backend-go/internal/pkg/storage"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	ReportSick(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
	MonthHistory(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	files             storage.FileStorage
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, files storage.FileStorage) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
		files:             files,
	}
}

const maxCertificateSize = 5 << 20 // 5 MiB

var allowedCertificateExts = []string{".pdf", ".jpg", ".jpeg", ".png"}

// ClockIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		slog.Error("ClockIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", entry)
}

// ClockOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockOutRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserID = middleware.UserID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	entry, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		slog.Error("ClockOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", entry)
}

// ReportSick implements AttendanceHandler. The request arrives as multipart
// form data so a medical certificate can ride along.
func (h *AttendanceHandlerImpl) ReportSick(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCertificateSize); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := attendance.SickLeaveRequest{
		UserID:      middleware.UserID(r),
		Description: r.FormValue("description"),
		StartDate:   r.FormValue("start_date"),
		EndDate:     r.FormValue("end_date"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, header, err := r.FormFile("certificate")
	if err == nil {
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		allowed := false
		for _, e := range allowedCertificateExts {
			if ext == e {
				allowed = true
				break
			}
		}
		if !allowed {
			response.BadRequest(w, "certificate must be a pdf, jpg, jpeg or png file", nil)
			return
		}
		if header.Size > maxCertificateSize {
			response.BadRequest(w, "certificate must not exceed 5 MB", nil)
			return
		}

		path := fmt.Sprintf("certificates/%s/%d-%s%s", req.UserID, time.Now().Unix(), uuid.NewString(), ext)
		stored, err := h.files.Upload(r.Context(), file, path)
		if err != nil {
			slog.Error("ReportSick certificate upload error", "error", err)
			response.InternalServerError(w, "Failed to store certificate")
			return
		}
		req.CertificatePath = stored
	} else if err != http.ErrMissingFile {
		response.BadRequest(w, "Invalid certificate upload", nil)
		return
	}

	entry, svcErr := h.attendanceService.ReportSick(r.Context(), req)
	if svcErr != nil {
		slog.Error("ReportSick service error", "error", svcErr)
		if req.CertificatePath != "" {
			if cleanupErr := h.files.Delete(r.Context(), req.CertificatePath); cleanupErr != nil {
				slog.Warn("ReportSick certificate cleanup failed", "error", cleanupErr, "path", req.CertificatePath)
			}
		}
		response.HandleError(w, svcErr)
		return
	}

	response.Created(w, "Sick leave recorded", entry)
}

// TodayStatus implements AttendanceHandler.
func (h *AttendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.attendanceService.TodayStatus(r.Context(), middleware.UserID(r))
	if err != nil {
		slog.Error("TodayStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// MonthHistory implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MonthHistory(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(attendance.Location())
	year, month := now.Year(), int(now.Month())
	if y := optionalQueryInt(r, "year"); y != nil {
		year = *y
	}
	if m := optionalQueryInt(r, "month"); m != nil {
		month = *m
	}
	if month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	history, err := h.attendanceService.MonthHistory(r.Context(), middleware.UserID(r), year, month)
	if err != nil {
		slog.Error("MonthHistory service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	filter := attendance.ListAttendanceFilter{
		UserID:    optionalQuery(r, "user_id"),
		StartDate: optionalQuery(r, "start_date"),
		EndDate:   optionalQuery(r, "end_date"),
		Search:    optionalQuery(r, "search"),
		Page:      page,
		Limit:     limit,
	}

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("ListAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(page, limit, total))
}
