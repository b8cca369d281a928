package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	hours attendance.WorkHours
	loc   *time.Location
	now   func() time.Time
}

// today returns the current instant and its calendar day in the service
// location.
func (a *AttendanceServiceImpl) today() (time.Time, time.Time) {
	now := a.now().In(a.loc).Truncate(time.Second)
	return now, attendance.DateOf(now)
}

func (a *AttendanceServiceImpl) requireEmployee(ctx context.Context, employeeID string) (employee.Employee, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	emp, err := a.requireEmployee(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, today := a.today()
	isLate, lateMinutes := a.hours.Lateness(now)

	var result attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(txCtx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}

		if existing != nil {
			if existing.ClockIn != nil {
				return attendance.ErrAlreadyClockedIn
			}
			// A record marked ahead of time is stamped in place and keeps its status.
			existing.ClockIn = &now
			existing.IsLate = isLate
			existing.LateMinutes = lateMinutes
			result, err = a.AttendanceRepository.Update(txCtx, *existing)
			if err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
			return nil
		}

		result, err = a.AttendanceRepository.Create(txCtx, attendance.Attendance{
			EmployeeID:  employeeID,
			Date:        today,
			ClockIn:     &now,
			Status:      attendance.StatusPresent,
			IsLate:      isLate,
			LateMinutes: lateMinutes,
		})
		if err != nil {
			// Lost the race against a concurrent clock-in for the same day.
			if errors.Is(err, attendance.ErrAttendanceExists) {
				return attendance.ErrAlreadyClockedIn
			}
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	withEmployee(&result, emp)
	slog.Info("employee clocked in", "employee_id", employeeID, "date", today.Format("2006-01-02"), "is_late", isLate, "late_minutes", lateMinutes)
	return attendance.NewAttendanceResponse(result), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	if _, err := a.requireEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now, today := a.today()

	var result attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByEmployeeAndDateForUpdate(txCtx, employeeID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		if existing == nil || existing.ClockIn == nil {
			return attendance.ErrNotClockedIn
		}
		if existing.ClockOut != nil {
			return attendance.ErrAlreadyClockedOut
		}

		hours := attendance.WorkedHours(*existing.ClockIn, now)
		existing.ClockOut = &now
		existing.WorkingHours = &hours

		result, err = a.AttendanceRepository.Update(txCtx, *existing)
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("employee clocked out", "employee_id", employeeID, "date", today.Format("2006-01-02"), "working_hours", *result.WorkingHours)
	return attendance.NewAttendanceResponse(result), nil
}

// applyEntry copies the request fields onto record. Lateness follows the
// clock-in; worked hours are derived when both times are known and none was
// supplied.
func (a *AttendanceServiceImpl) applyEntry(record *attendance.Attendance, entry attendance.AttendanceEntry) {
	clockIn, clockOut := entry.Times(record.Date)

	record.ClockIn = clockIn
	record.ClockOut = clockOut
	record.Status = entry.StatusOrDefault()
	record.Remarks = entry.Remarks
	record.WorkingHours = entry.WorkingHours

	record.IsLate, record.LateMinutes = false, 0
	if clockIn != nil {
		record.IsLate, record.LateMinutes = a.hours.Lateness(*clockIn)
	}
	if record.WorkingHours == nil && clockIn != nil && clockOut != nil {
		hours := attendance.WorkedHours(*clockIn, *clockOut)
		record.WorkingHours = &hours
	}
}

// withEmployee fills the display fields a fresh insert does not return.
func withEmployee(record *attendance.Attendance, emp employee.Employee) {
	if record.EmployeeName == nil {
		record.EmployeeName = &emp.FullName
		record.EmployeeCode = &emp.EmployeeCode
	}
}

// localDay maps a calendar date, whatever its location, onto midnight in the
// service location.
func (a *AttendanceServiceImpl) localDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, a.loc)
}

// MarkAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	emp, err := a.requireEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	day, _ := time.ParseInLocation("2006-01-02", req.AttendanceDate, a.loc)
	record := attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       day,
	}
	a.applyEntry(&record, req.AttendanceEntry)

	created, err := a.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceExists) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	withEmployee(&created, emp)
	slog.Info("attendance marked", "attendance_id", created.ID, "employee_id", created.EmployeeID, "date", req.AttendanceDate, "status", created.Status)
	return attendance.NewAttendanceResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var result attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := a.AttendanceRepository.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return err
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		existing.Date = a.localDay(existing.Date)
		a.applyEntry(&existing, req.AttendanceEntry)

		result, err = a.AttendanceRepository.Update(txCtx, existing)
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(result), nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	slog.Info("attendance deleted", "attendance_id", id)
	return nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(record), nil
}

// GetTodayAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayAttendance(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	_, today := a.today()
	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return nil, nil
	}
	resp := attendance.NewAttendanceResponse(*record)
	return &resp, nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetAttendanceByDate implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendanceByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceResponse, error) {
	records, err := a.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetMonthlyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlyAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceResponse, error) {
	if start.After(end) {
		return nil, attendance.ErrInvalidDateRange
	}
	records, err := a.AttendanceRepository.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance in range: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetSummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetSummary(ctx context.Context, employeeID string, start, end time.Time) (attendance.SummaryResponse, error) {
	if start.After(end) {
		return attendance.SummaryResponse{}, attendance.ErrInvalidDateRange
	}
	emp, err := a.requireEmployee(ctx, employeeID)
	if err != nil {
		return attendance.SummaryResponse{}, err
	}

	records, err := a.AttendanceRepository.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to list attendance in range: %w", err)
	}

	summary := attendance.Summarize(records)
	summary.EmployeeID = emp.ID
	summary.EmployeeName = emp.FullName
	summary.Month = start.Format("2006-01")
	summary.ScheduledHoursPerDay = a.hours.ScheduledHours()

	return attendance.NewSummaryResponse(summary), nil
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	hours attendance.WorkHours,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		hours:                hours,
		loc:                  loc,
		now:                  time.Now,
	}
}
