package report

import (
	"context"
	"fmt"
	"io"

	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	// ExportAttendance writes an xlsx workbook of attendance records
	// matching the filter.
	ExportAttendance(ctx context.Context, filter attendance.ListAttendanceFilter, w io.Writer) error
}

type ReportServiceImpl struct {
	attendance.AttendanceRepository
}

func NewReportService(attendanceRepository attendance.AttendanceRepository) ReportService {
	return &ReportServiceImpl{AttendanceRepository: attendanceRepository}
}

const maxExportRows = 10000

var exportHeaders = []string{
	"Date", "Name", "Position", "Status",
	"Clock In", "Clock In Address", "Clock In Mode",
	"Clock Out", "Clock Out Address", "Clock Out Mode",
	"Sick Description",
}

// ExportAttendance implements ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, filter attendance.ListAttendanceFilter, w io.Writer) error {
	filter.Page = 1
	filter.Limit = maxExportRows

	records, _, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to load attendance records: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, style)
	}

	for rowIdx, rec := range records {
		row := rowValues(rec)
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 12)
	_ = f.SetColWidth(sheet, "B", "C", 24)
	_ = f.SetColWidth(sheet, "E", "J", 20)
	_ = f.SetColWidth(sheet, "K", "K", 36)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func rowValues(rec attendance.Record) []interface{} {
	status := "present"
	switch rec.State() {
	case attendance.DayStateSickLeave:
		status = "sick"
	case attendance.DayStateClockedIn:
		status = "clocked in"
	case attendance.DayStateClockedOut:
		status = "present"
	case attendance.DayStateNoRecord:
		status = ""
	}

	row := []interface{}{
		rec.Date.Format("2006-01-02"),
		deref(rec.UserName),
		deref(rec.PositionName),
		status,
	}

	if rec.ClockInAt != nil {
		row = append(row,
			rec.ClockInAt.In(attendance.Location()).Format("15:04:05"),
			deref(rec.ClockInAddr),
			string(derefMode(rec.ClockInMode)),
		)
	} else {
		row = append(row, "", "", "")
	}

	if rec.ClockOutAt != nil {
		row = append(row,
			rec.ClockOutAt.In(attendance.Location()).Format("15:04:05"),
			deref(rec.ClockOutAddr),
			string(derefMode(rec.ClockOutMode)),
		)
	} else {
		row = append(row, "", "", "")
	}

	row = append(row, deref(rec.SickDescription))
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefMode(m *attendance.WorkMode) attendance.WorkMode {
	if m == nil {
		return ""
	}
	return *m
}
