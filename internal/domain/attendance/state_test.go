package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayContext_CanClockIn(t *testing.T) {
	cases := []struct {
		name string
		ctx  DayContext
		want bool
	}{
		{"no record on working day", DayContext{State: DayStateNoRecord}, true},
		{"weekend", DayContext{State: DayStateNoRecord, IsWeekend: true}, false},
		{"holiday", DayContext{State: DayStateNoRecord, IsHoliday: true}, false},
		{"already clocked in", DayContext{State: DayStateClockedIn}, false},
		{"already clocked out", DayContext{State: DayStateClockedOut}, false},
		{"sick leave", DayContext{State: DayStateSickLeave}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.ctx.CanClockIn(), c.name)
	}
}

func TestDayContext_CanClockOut(t *testing.T) {
	assert.True(t, DayContext{State: DayStateClockedIn}.CanClockOut())
	// Clocking out stays possible on a day that turned into a weekend or
	// holiday edge case, only the state matters.
	assert.True(t, DayContext{State: DayStateClockedIn, IsWeekend: true}.CanClockOut())

	assert.False(t, DayContext{State: DayStateNoRecord}.CanClockOut())
	assert.False(t, DayContext{State: DayStateClockedOut}.CanClockOut())
	assert.False(t, DayContext{State: DayStateSickLeave}.CanClockOut())
}

func TestDayContext_CanReportSick(t *testing.T) {
	assert.True(t, DayContext{State: DayStateNoRecord}.CanReportSick())
	// Sick days can be reported on weekends and holidays too.
	assert.True(t, DayContext{State: DayStateNoRecord, IsWeekend: true}.CanReportSick())
	assert.True(t, DayContext{State: DayStateNoRecord, IsHoliday: true}.CanReportSick())

	assert.False(t, DayContext{State: DayStateClockedIn}.CanReportSick())
	assert.False(t, DayContext{State: DayStateClockedOut}.CanReportSick())
	assert.False(t, DayContext{State: DayStateSickLeave}.CanReportSick())
}

func TestRecord_State(t *testing.T) {
	var missing *Record
	assert.Equal(t, DayStateNoRecord, missing.State())

	now := time.Now()
	clockedIn := &Record{ClockInAt: &now}
	assert.Equal(t, DayStateClockedIn, clockedIn.State())

	clockedOut := &Record{ClockInAt: &now, ClockOutAt: &now}
	assert.Equal(t, DayStateClockedOut, clockedOut.State())

	desc := "flu"
	sick := &Record{SickDescription: &desc}
	assert.Equal(t, DayStateSickLeave, sick.State())
}

func TestDayOf(t *testing.T) {
	// 2026-03-01 18:30 UTC is already 2026-03-02 01:30 in Jakarta.
	utc := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
	day := DayOf(utc)

	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.March, day.Month())
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, Location(), day.Location())
}

func TestIsWeekend(t *testing.T) {
	saturday := time.Date(2026, 3, 7, 12, 0, 0, 0, Location())
	sunday := time.Date(2026, 3, 8, 12, 0, 0, 0, Location())
	monday := time.Date(2026, 3, 9, 12, 0, 0, 0, Location())

	assert.True(t, IsWeekend(saturday))
	assert.True(t, IsWeekend(sunday))
	assert.False(t, IsWeekend(monday))
}

func TestSickRange_Covers(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, Location())
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, Location())
	r := SickRange{Start: start, End: end}

	assert.True(t, r.Covers(start))
	assert.True(t, r.Covers(start.AddDate(0, 0, 1)))
	assert.True(t, r.Covers(end))
	assert.False(t, r.Covers(start.AddDate(0, 0, -1)))
	assert.False(t, r.Covers(end.AddDate(0, 0, 1)))
}
