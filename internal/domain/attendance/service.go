package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	ClockIn(ctx context.Context, employeeID string) (AttendanceResponse, error)
	ClockOut(ctx context.Context, employeeID string) (AttendanceResponse, error)

	// MarkAttendance is the administrative entry for an arbitrary date.
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	UpdateAttendance(ctx context.Context, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	DeleteAttendance(ctx context.Context, id string) error

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// GetTodayAttendance returns nil when the employee has no record today.
	GetTodayAttendance(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	GetEmployeeAttendance(ctx context.Context, employeeID string) ([]AttendanceResponse, error)
	GetAttendanceByDate(ctx context.Context, date time.Time) ([]AttendanceResponse, error)
	GetMonthlyAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceResponse, error)
	GetSummary(ctx context.Context, employeeID string, start, end time.Time) (SummaryResponse, error)

	// ExportMonthly renders the range and its summary as an xlsx workbook.
	ExportMonthly(ctx context.Context, employeeID string, start, end time.Time) (Export, error)
}
