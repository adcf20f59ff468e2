package attendance

import "time"

type WorkMode string

const (
	WorkModeOnsite WorkMode = "onsite"
	WorkModeHybrid WorkMode = "hybrid"
)

var ValidWorkModes = []WorkMode{WorkModeOnsite, WorkModeHybrid}

// DayStatus is the derived status of one calendar day.
type DayStatus string

const (
	DayStatusPresent DayStatus = "present"
	DayStatusAbsent  DayStatus = "absent"
	DayStatusHoliday DayStatus = "holiday"
	DayStatusWeekend DayStatus = "weekend"
	DayStatusSick    DayStatus = "sick"
)

// Record is one attendance day of one user. A day holds either clock data
// or a sick leave sub-record, never both.
type Record struct {
	ID     string
	UserID string
	Date   time.Time // normalized to midnight, Asia/Jakarta

	ClockInAt      *time.Time
	ClockInLat     *float64
	ClockInLng     *float64
	ClockInAddr    *string
	ClockInMode    *WorkMode
	ClockOutAt     *time.Time
	ClockOutLat    *float64
	ClockOutLng    *float64
	ClockOutAddr   *string
	ClockOutMode   *WorkMode

	SickDescription *string
	SickStartDate   *time.Time
	SickEndDate     *time.Time
	SickCertificate *string // storage path

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joins
	UserName     *string
	PositionName *string
}

// SickRange is a reported sick leave interval, dates inclusive.
type SickRange struct {
	Start time.Time
	End   time.Time
}

// Covers reports whether the range includes the date.
func (s SickRange) Covers(date time.Time) bool {
	return !date.Before(s.Start) && !date.After(s.End)
}

// IsSick reports whether the day is covered by a sick leave sub-record.
func (r *Record) IsSick() bool {
	return r.SickDescription != nil
}

// State derives the day state from the stored record.
func (r *Record) State() DayState {
	switch {
	case r == nil:
		return DayStateNoRecord
	case r.IsSick():
		return DayStateSickLeave
	case r.ClockOutAt != nil:
		return DayStateClockedOut
	case r.ClockInAt != nil:
		return DayStateClockedIn
	default:
		return DayStateNoRecord
	}
}
