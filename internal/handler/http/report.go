package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/handler/http/response"
	"github.com/kantorkita/hr-backend-go/internal/service/report"
)

type ReportHandler interface {
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// ExportAttendance implements ReportHandler. Sends an xlsx workbook of
// attendance records matching the query filters. The workbook is built in
// memory so errors can still produce a JSON response.
func (h *ReportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListAttendanceFilter{
		UserID:    optionalQuery(r, "user_id"),
		StartDate: optionalQuery(r, "start_date"),
		EndDate:   optionalQuery(r, "end_date"),
		Search:    optionalQuery(r, "search"),
	}

	var buf bytes.Buffer
	if err := h.reportService.ExportAttendance(r.Context(), filter, &buf); err != nil {
		slog.Error("ExportAttendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s.xlsx", time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("ExportAttendance write error", "error", err)
	}
}
