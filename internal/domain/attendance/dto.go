package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/validator"
)

// MarkAttendanceRequest is the administrative entry for one employee-day.
// Clock times are "HH:MM" or "HH:MM:SS" on the attendance date.
type MarkAttendanceRequest struct {
	EmployeeID     string `json:"employee_id"`
	AttendanceDate string `json:"attendance_date"`
	AttendanceEntry
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if validator.IsEmpty(r.AttendanceDate) {
		errs.Add("attendance_date", "attendance_date is required")
	} else if _, ok := validator.IsValidDate(r.AttendanceDate); !ok {
		errs.Add("attendance_date", "attendance_date must be in YYYY-MM-DD format")
	}

	errs = append(errs, r.AttendanceEntry.validate()...)
	return errs.OrNil()
}

// UpdateAttendanceRequest overwrites the mutable fields of a record.
type UpdateAttendanceRequest struct {
	AttendanceEntry
}

func (r *UpdateAttendanceRequest) Validate() error {
	return r.AttendanceEntry.validate().OrNil()
}

// AttendanceEntry holds the fields shared by mark and update.
type AttendanceEntry struct {
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	Status       string   `json:"status"`
	Remarks      *string  `json:"remarks,omitempty"`
	WorkingHours *float64 `json:"working_hours,omitempty"`
}

func (e *AttendanceEntry) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if e.Status != "" && !Status(e.Status).IsValid() {
		errs.Add("status", "status must be one of PRESENT, ABSENT, HALF_DAY, LEAVE, HOLIDAY")
	}

	var in, out time.Duration
	var hasIn, hasOut bool
	if e.ClockInTime != nil {
		if in, hasIn = validator.IsValidClock(*e.ClockInTime); !hasIn {
			errs.Add("clock_in_time", "clock_in_time must be in HH:MM format")
		}
	}
	if e.ClockOutTime != nil {
		if out, hasOut = validator.IsValidClock(*e.ClockOutTime); !hasOut {
			errs.Add("clock_out_time", "clock_out_time must be in HH:MM format")
		}
	}
	if hasIn && hasOut && out < in {
		errs.Add("clock_out_time", "clock_out_time must not be before clock_in_time")
	}
	if e.ClockOutTime != nil && e.ClockInTime == nil {
		errs.Add("clock_in_time", "clock_in_time is required when clock_out_time is set")
	}

	if e.WorkingHours != nil && (*e.WorkingHours < 0 || *e.WorkingHours > 24) {
		errs.Add("working_hours", "working_hours must be between 0 and 24")
	}

	return errs
}

// StatusOrDefault returns the requested status, PRESENT when absent.
func (e *AttendanceEntry) StatusOrDefault() Status {
	if e.Status == "" {
		return StatusPresent
	}
	return Status(e.Status)
}

// Times resolves the clock times onto day. Call after validation.
func (e *AttendanceEntry) Times(day time.Time) (clockIn, clockOut *time.Time) {
	if e.ClockInTime != nil {
		if offset, ok := validator.IsValidClock(*e.ClockInTime); ok {
			t := At(day, offset)
			clockIn = &t
		}
	}
	if e.ClockOutTime != nil {
		if offset, ok := validator.IsValidClock(*e.ClockOutTime); ok {
			t := At(day, offset)
			clockOut = &t
		}
	}
	return clockIn, clockOut
}

type AttendanceResponse struct {
	ID             string     `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	EmployeeName   *string    `json:"employee_name,omitempty"`
	EmployeeCode   *string    `json:"employee_code,omitempty"`
	AttendanceDate string     `json:"attendance_date"`
	ClockIn        *time.Time `json:"clock_in,omitempty"`
	ClockOut       *time.Time `json:"clock_out,omitempty"`
	Status         string     `json:"status"`
	Remarks        *string    `json:"remarks,omitempty"`
	WorkingHours   *float64   `json:"working_hours"`
	IsLate         bool       `json:"is_late"`
	LateMinutes    int        `json:"late_minutes"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		EmployeeCode:   a.EmployeeCode,
		AttendanceDate: a.Date.Format(validator.DateLayout),
		ClockIn:        a.ClockIn,
		ClockOut:       a.ClockOut,
		Status:         string(a.Status),
		Remarks:        a.Remarks,
		WorkingHours:   a.WorkingHours,
		IsLate:         a.IsLate,
		LateMinutes:    a.LateMinutes,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(records))
	for _, r := range records {
		result = append(result, NewAttendanceResponse(r))
	}
	return result
}

type SummaryResponse struct {
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name"`
	Month                string  `json:"month"`
	TotalWorkingDays     int     `json:"total_working_days"`
	PresentDays          int     `json:"present_days"`
	AbsentDays           int     `json:"absent_days"`
	LateDays             int     `json:"late_days"`
	HalfDays             int     `json:"half_days"`
	LeaveDays            int     `json:"leave_days"`
	TotalWorkingHours    float64 `json:"total_working_hours"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	ScheduledHoursPerDay float64 `json:"scheduled_hours_per_day"`
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		EmployeeID:           s.EmployeeID,
		EmployeeName:         s.EmployeeName,
		Month:                s.Month,
		TotalWorkingDays:     s.TotalWorkingDays,
		PresentDays:          s.PresentDays,
		AbsentDays:           s.AbsentDays,
		LateDays:             s.LateDays,
		HalfDays:             s.HalfDays,
		LeaveDays:            s.LeaveDays,
		TotalWorkingHours:    s.TotalWorkingHours,
		AttendancePercentage: s.AttendancePercentage,
		ScheduledHoursPerDay: s.ScheduledHoursPerDay,
	}
}

// Export is a rendered report ready to be served as a download.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}
