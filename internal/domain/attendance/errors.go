package attendance

import "errors"

var (
	ErrRecordNotFound    = errors.New("Attendance record not found")
	ErrAlreadyClockedIn  = errors.New("Already clocked in today")
	ErrAlreadyClockedOut = errors.New("Already clocked out today")
	ErrNotClockedIn      = errors.New("No clock in recorded today")
	ErrSickLeaveToday    = errors.New("Sick leave already reported today")
	ErrHolidayToday      = errors.New("Cannot clock in on a holiday")
	ErrWeekendToday      = errors.New("Cannot clock in on a weekend")
	ErrInvalidCoordinate = errors.New("Invalid coordinates")
)
