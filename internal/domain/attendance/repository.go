package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByUserDate(ctx context.Context, userID string, date time.Time) (Record, error)
	SetClockOut(ctx context.Context, id string, at time.Time, lat, lng float64, addr string, mode WorkMode) error
	ListByUserMonth(ctx context.Context, userID string, year int, month time.Month) ([]Record, error)
	List(ctx context.Context, filter ListAttendanceFilter) ([]Record, int64, error)
	// HasSickOn reports whether any sick leave range of the user covers the date.
	HasSickOn(ctx context.Context, userID string, date time.Time) (bool, error)
	// ListSickRanges returns the user's sick leave ranges overlapping [from, to].
	ListSickRanges(ctx context.Context, userID string, from, to time.Time) ([]SickRange, error)
}
