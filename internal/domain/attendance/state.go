package attendance

import "time"

// DayState is the explicit per-day attendance state. Availability of clock
// actions is decided here, never re-derived from flag combinations at call
// sites.
type DayState string

const (
	DayStateNoRecord   DayState = "no_record"
	DayStateClockedIn  DayState = "clocked_in"
	DayStateClockedOut DayState = "clocked_out"
	DayStateSickLeave  DayState = "sick_leave"
)

// DayContext is everything needed to decide what is allowed today.
type DayContext struct {
	State     DayState
	IsWeekend bool
	IsHoliday bool
}

// CanClockIn is allowed only from NoRecord on a working day.
func (c DayContext) CanClockIn() bool {
	return c.State == DayStateNoRecord && !c.IsWeekend && !c.IsHoliday
}

// CanClockOut is allowed only while clocked in.
func (c DayContext) CanClockOut() bool {
	return c.State == DayStateClockedIn
}

// CanReportSick is allowed only from NoRecord, the day then becomes terminal.
func (c DayContext) CanReportSick() bool {
	return c.State == DayStateNoRecord
}

// jakarta is the reference time zone for day boundaries, weekends and
// holiday matching.
var jakarta = loadJakarta()

func loadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		return time.FixedZone("WIB", 7*3600)
	}
	return loc
}

// Location returns the Asia/Jakarta time zone.
func Location() *time.Location {
	return jakarta
}

// DayOf normalizes a timestamp to its calendar day in Asia/Jakarta.
func DayOf(t time.Time) time.Time {
	local := t.In(jakarta)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, jakarta)
}

// IsWeekend reports whether the date falls on Saturday or Sunday in
// Asia/Jakarta.
func IsWeekend(t time.Time) bool {
	wd := t.In(jakarta).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
