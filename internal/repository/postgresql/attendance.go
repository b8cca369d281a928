package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.attendance_date, a.clock_in, a.clock_out,
		   a.status, a.remarks, a.working_hours, a.is_late, a.late_minutes,
		   a.created_at, a.updated_at,
		   e.full_name, e.employee_code
	FROM attendance a
	JOIN employees e ON e.id = a.employee_id
`

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.ClockIn, &att.ClockOut,
		&att.Status, &att.Remarks, &att.WorkingHours, &att.IsLate, &att.LateMinutes,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName, &att.EmployeeCode,
	)
	return att, err
}

func (a *attendanceRepository) list(ctx context.Context, where string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, attendanceSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := newID()
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		INSERT INTO attendance (
			id, employee_id, attendance_date, clock_in, clock_out,
			status, remarks, working_hours, is_late, late_minutes
		) VALUES (
			$1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, attendance_date, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id,
		newAttendance.EmployeeID,
		dateParam(newAttendance.Date),
		newAttendance.ClockIn,
		newAttendance.ClockOut,
		newAttendance.Status,
		newAttendance.Remarks,
		newAttendance.WorkingHours,
		newAttendance.IsLate,
		newAttendance.LateMinutes,
	).Scan(&newAttendance.ID, &newAttendance.Date, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}
	return att, nil
}

func (a *attendanceRepository) getByEmployeeAndDate(ctx context.Context, lock string, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx,
		attendanceSelect+` WHERE a.employee_id = $1 AND a.attendance_date = $2::date`+lock,
		employeeID, dateParam(date),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return &att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return a.getByEmployeeAndDate(ctx, "", employeeID, date)
}

// GetByEmployeeAndDateForUpdate implements attendance.AttendanceRepository.
// Must run inside a transaction.
func (a *attendanceRepository) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return a.getByEmployeeAndDate(ctx, " FOR UPDATE OF a", employeeID, date)
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance
		SET clock_in = $1,
			clock_out = $2,
			status = $3,
			remarks = $4,
			working_hours = $5,
			is_late = $6,
			late_minutes = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ClockIn,
		att.ClockOut,
		att.Status,
		att.Remarks,
		att.WorkingHours,
		att.IsLate,
		att.LateMinutes,
		att.ID,
	).Scan(&att.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return att, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return a.list(ctx, ` WHERE a.employee_id = $1 ORDER BY a.attendance_date DESC`, employeeID)
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	return a.list(ctx, ` WHERE a.attendance_date = $1::date ORDER BY e.full_name`, dateParam(date))
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	return a.list(ctx,
		` WHERE a.employee_id = $1 AND a.attendance_date BETWEEN $2::date AND $3::date ORDER BY a.attendance_date DESC`,
		employeeID, dateParam(start), dateParam(end),
	)
}
