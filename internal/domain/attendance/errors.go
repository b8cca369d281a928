package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyClockedIn   = errors.New("already clocked in today")
	ErrNotClockedIn       = errors.New("no clock-in record found for today")
	ErrAlreadyClockedOut  = errors.New("already clocked out today")
	ErrAttendanceExists   = errors.New("attendance already marked for this employee on this date")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
)
