package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusLeave   Status = "LEAVE"
	StatusHoliday Status = "HOLIDAY"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay, StatusLeave, StatusHoliday:
		return true
	}
	return false
}

// Attendance is one employee's record for one calendar day.
type Attendance struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	ClockIn      *time.Time
	ClockOut     *time.Time
	Status       Status
	Remarks      *string
	WorkingHours *float64
	IsLate       bool
	LateMinutes  int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// Summary aggregates the records of one employee over a date range.
type Summary struct {
	EmployeeID           string
	EmployeeName         string
	Month                string
	TotalWorkingDays     int
	PresentDays          int
	AbsentDays           int
	LateDays             int
	HalfDays             int
	LeaveDays            int
	TotalWorkingHours    float64
	AttendancePercentage float64
	ScheduledHoursPerDay float64
}
