package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// Dates are calendar days; only their year, month and day are used.
type AttendanceRepository interface {
	// Create fails with ErrAttendanceExists when the employee already has a
	// record for that date.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil without error when there is no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// GetByEmployeeAndDateForUpdate is GetByEmployeeAndDate holding the row
	// lock until the surrounding transaction ends.
	GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) (Attendance, error)
	Delete(ctx context.Context, id string) error

	// ListByEmployee is ordered newest date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListByEmployeeBetween is inclusive of both bounds, newest date first.
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)
}
