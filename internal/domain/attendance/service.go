package attendance

import "context"

type AttendanceService interface {
	ClockIn(ctx context.Context, req ClockInRequest) (RecordEntry, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (RecordEntry, error)
	ReportSick(ctx context.Context, req SickLeaveRequest) (RecordEntry, error)
	TodayStatus(ctx context.Context, userID string) (TodayStatusResponse, error)
	MonthHistory(ctx context.Context, userID string, year int, month int) (MonthHistoryResponse, error)

	// Admin
	List(ctx context.Context, filter ListAttendanceFilter) ([]RecordEntry, int64, error)
}
