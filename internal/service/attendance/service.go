package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kantorkita/hr-backend-go/internal/domain/attendance"
	"github.com/kantorkita/hr-backend-go/internal/pkg/database"
	"github.com/kantorkita/hr-backend-go/internal/pkg/geocode"
	"github.com/kantorkita/hr-backend-go/internal/pkg/holiday"
	"github.com/kantorkita/hr-backend-go/internal/pkg/storage"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	calendar *holiday.Calendar
	geocoder *geocode.Client
	files    storage.FileStorage
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepository attendance.AttendanceRepository,
	calendar *holiday.Calendar,
	geocoder *geocode.Client,
	files storage.FileStorage,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		calendar:             calendar,
		geocoder:             geocoder,
		files:                files,
	}
}

// dayContext resolves today's state and gating for one user.
func (a *AttendanceServiceImpl) dayContext(ctx context.Context, userID string, day time.Time) (attendance.DayContext, *attendance.Record, error) {
	var recPtr *attendance.Record
	rec, err := a.AttendanceRepository.GetByUserDate(ctx, userID, day)
	if err != nil && !errors.Is(err, attendance.ErrRecordNotFound) {
		return attendance.DayContext{}, nil, err
	}
	if err == nil {
		recPtr = &rec
	}

	state := recPtr.State()
	if state == attendance.DayStateNoRecord {
		// A multi-day sick range reported earlier can cover today.
		sick, err := a.AttendanceRepository.HasSickOn(ctx, userID, day)
		if err != nil {
			return attendance.DayContext{}, nil, err
		}
		if sick {
			state = attendance.DayStateSickLeave
		}
	}

	isHoliday, _ := a.calendar.IsHoliday(day)
	return attendance.DayContext{
		State:     state,
		IsWeekend: attendance.IsWeekend(day),
		IsHoliday: isHoliday,
	}, recPtr, nil
}

// resolveAddress reverse geocodes best effort, falling back to a coordinate
// placeholder so a geocoder outage never blocks a clock action.
func (a *AttendanceServiceImpl) resolveAddress(ctx context.Context, lat, lng float64) string {
	addr, err := a.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		slog.Warn("Reverse geocode failed, using placeholder", "error", err)
		return geocode.FallbackAddress(lat, lng)
	}
	return addr
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.RecordEntry, error) {
	now := time.Now().In(attendance.Location())
	day := attendance.DayOf(now)

	dayCtx, _, err := a.dayContext(ctx, req.UserID, day)
	if err != nil {
		return attendance.RecordEntry{}, err
	}
	if !dayCtx.CanClockIn() {
		switch {
		case dayCtx.State == attendance.DayStateSickLeave:
			return attendance.RecordEntry{}, attendance.ErrSickLeaveToday
		case dayCtx.State != attendance.DayStateNoRecord:
			return attendance.RecordEntry{}, attendance.ErrAlreadyClockedIn
		case dayCtx.IsHoliday:
			return attendance.RecordEntry{}, attendance.ErrHolidayToday
		default:
			return attendance.RecordEntry{}, attendance.ErrWeekendToday
		}
	}

	addr := a.resolveAddress(ctx, req.Latitude, req.Longitude)
	mode := attendance.WorkMode(req.Mode)

	rec, err := a.AttendanceRepository.Create(ctx, attendance.Record{
		UserID:      req.UserID,
		Date:        day,
		ClockInAt:   &now,
		ClockInLat:  &req.Latitude,
		ClockInLng:  &req.Longitude,
		ClockInAddr: &addr,
		ClockInMode: &mode,
	})
	if err != nil {
		return attendance.RecordEntry{}, err
	}

	return a.toEntry(rec), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.RecordEntry, error) {
	now := time.Now().In(attendance.Location())
	day := attendance.DayOf(now)

	dayCtx, rec, err := a.dayContext(ctx, req.UserID, day)
	if err != nil {
		return attendance.RecordEntry{}, err
	}
	if !dayCtx.CanClockOut() {
		switch dayCtx.State {
		case attendance.DayStateClockedOut:
			return attendance.RecordEntry{}, attendance.ErrAlreadyClockedOut
		case attendance.DayStateSickLeave:
			return attendance.RecordEntry{}, attendance.ErrSickLeaveToday
		default:
			return attendance.RecordEntry{}, attendance.ErrNotClockedIn
		}
	}

	addr := a.resolveAddress(ctx, req.Latitude, req.Longitude)
	mode := attendance.WorkMode(req.Mode)

	if err := a.AttendanceRepository.SetClockOut(ctx, rec.ID, now, req.Latitude, req.Longitude, addr, mode); err != nil {
		return attendance.RecordEntry{}, err
	}

	updated, err := a.AttendanceRepository.GetByUserDate(ctx, req.UserID, day)
	if err != nil {
		return attendance.RecordEntry{}, err
	}

	return a.toEntry(updated), nil
}

// ReportSick implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ReportSick(ctx context.Context, req attendance.SickLeaveRequest) (attendance.RecordEntry, error) {
	loc := attendance.Location()
	start, err := time.ParseInLocation("2006-01-02", req.StartDate, loc)
	if err != nil {
		return attendance.RecordEntry{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end := start
	if req.EndDate != "" {
		end, err = time.ParseInLocation("2006-01-02", req.EndDate, loc)
		if err != nil {
			return attendance.RecordEntry{}, fmt.Errorf("invalid end_date: %w", err)
		}
	}

	day := attendance.DayOf(time.Now())
	dayCtx, _, err := a.dayContext(ctx, req.UserID, day)
	if err != nil {
		return attendance.RecordEntry{}, err
	}
	if !dayCtx.CanReportSick() {
		if dayCtx.State == attendance.DayStateSickLeave {
			return attendance.RecordEntry{}, attendance.ErrSickLeaveToday
		}
		return attendance.RecordEntry{}, attendance.ErrAlreadyClockedIn
	}

	var certificate *string
	if req.CertificatePath != "" {
		certificate = &req.CertificatePath
	}

	rec, err := a.AttendanceRepository.Create(ctx, attendance.Record{
		UserID:          req.UserID,
		Date:            day,
		SickDescription: &req.Description,
		SickStartDate:   &start,
		SickEndDate:     &end,
		SickCertificate: certificate,
	})
	if err != nil {
		return attendance.RecordEntry{}, err
	}

	return a.toEntry(rec), nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context, userID string) (attendance.TodayStatusResponse, error) {
	day := attendance.DayOf(time.Now())

	dayCtx, rec, err := a.dayContext(ctx, userID, day)
	if err != nil {
		return attendance.TodayStatusResponse{}, err
	}

	resp := attendance.TodayStatusResponse{
		Date:          day.Format("2006-01-02"),
		State:         dayCtx.State,
		IsWeekend:     dayCtx.IsWeekend,
		IsHoliday:     dayCtx.IsHoliday,
		CanClockIn:    dayCtx.CanClockIn(),
		CanClockOut:   dayCtx.CanClockOut(),
		CanReportSick: dayCtx.CanReportSick(),
	}
	if ok, name := a.calendar.IsHoliday(day); ok {
		resp.HolidayName = &name
	}
	if rec != nil {
		entry := a.toEntry(*rec)
		resp.Record = &entry
	}

	return resp, nil
}

// MonthHistory implements attendance.AttendanceService. Derived day status
// priority: holiday, sick, present, absent. Absent applies to past weekdays
// only.
func (a *AttendanceServiceImpl) MonthHistory(ctx context.Context, userID string, year int, month int) (attendance.MonthHistoryResponse, error) {
	if month < 1 || month > 12 {
		return attendance.MonthHistoryResponse{}, fmt.Errorf("month out of range")
	}

	records, err := a.AttendanceRepository.ListByUserMonth(ctx, userID, year, time.Month(month))
	if err != nil {
		return attendance.MonthHistoryResponse{}, err
	}

	byDate := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byDate[rec.Date.Format("2006-01-02")] = rec
	}

	loc := attendance.Location()
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)
	today := attendance.DayOf(time.Now())

	sickRanges, err := a.AttendanceRepository.ListSickRanges(ctx, userID, first, last)
	if err != nil {
		return attendance.MonthHistoryResponse{}, err
	}

	var days []attendance.DayEntry
	for d := first; d.Month() == time.Month(month); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		isWeekend := attendance.IsWeekend(d)
		isHoliday, holidayName := a.calendar.IsHoliday(d)

		entry := attendance.DayEntry{
			Date:      key,
			IsWeekend: isWeekend,
			IsHoliday: isHoliday,
		}
		if isHoliday {
			entry.HolidayName = &holidayName
		}

		rec, hasRecord := byDate[key]
		sick := hasRecord && rec.IsSick()
		for i := 0; !sick && i < len(sickRanges); i++ {
			sick = sickRanges[i].Covers(d)
		}

		switch {
		case isHoliday:
			entry.Status = attendance.DayStatusHoliday
		case sick:
			entry.Status = attendance.DayStatusSick
		case hasRecord && rec.ClockInAt != nil:
			entry.Status = attendance.DayStatusPresent
		case isWeekend:
			entry.Status = attendance.DayStatusWeekend
		case d.Before(today):
			entry.Status = attendance.DayStatusAbsent
		default:
			entry.Status = ""
		}

		if hasRecord {
			recEntry := a.toEntry(rec)
			entry.Record = &recEntry
		}

		days = append(days, entry)
	}

	return attendance.MonthHistoryResponse{
		Year:  year,
		Month: month,
		Days:  days,
	}, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.RecordEntry, int64, error) {
	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]attendance.RecordEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, a.toEntry(rec))
	}

	return entries, total, nil
}

func (a *AttendanceServiceImpl) toEntry(rec attendance.Record) attendance.RecordEntry {
	entry := attendance.RecordEntry{
		ID:           rec.ID,
		UserID:       rec.UserID,
		UserName:     rec.UserName,
		PositionName: rec.PositionName,
		Date:         rec.Date.Format("2006-01-02"),
	}

	if rec.ClockInAt != nil {
		entry.ClockIn = &attendance.ClockEntry{
			At:      rec.ClockInAt.In(attendance.Location()).Format("2006-01-02 15:04:05"),
			Address: derefString(rec.ClockInAddr),
			Lat:     derefFloat(rec.ClockInLat),
			Lng:     derefFloat(rec.ClockInLng),
			Mode:    string(derefMode(rec.ClockInMode)),
		}
	}
	if rec.ClockOutAt != nil {
		entry.ClockOut = &attendance.ClockEntry{
			At:      rec.ClockOutAt.In(attendance.Location()).Format("2006-01-02 15:04:05"),
			Address: derefString(rec.ClockOutAddr),
			Lat:     derefFloat(rec.ClockOutLat),
			Lng:     derefFloat(rec.ClockOutLng),
			Mode:    string(derefMode(rec.ClockOutMode)),
		}
	}
	if rec.IsSick() {
		sick := &attendance.SickEntry{
			Description: *rec.SickDescription,
		}
		if rec.SickStartDate != nil {
			sick.StartDate = rec.SickStartDate.Format("2006-01-02")
		}
		if rec.SickEndDate != nil {
			sick.EndDate = rec.SickEndDate.Format("2006-01-02")
		}
		if rec.SickCertificate != nil && a.files != nil {
			url := a.files.URL(*rec.SickCertificate)
			sick.CertificateURL = &url
		}
		entry.SickLeave = sick
	}

	return entry
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefMode(m *attendance.WorkMode) attendance.WorkMode {
	if m == nil {
		return ""
	}
	return *m
}
