package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveSelect = `
	SELECT l.id, l.employee_id, l.leave_type_id, l.from_date, l.to_date,
		   l.number_of_days, l.reason, l.status, l.approved_by, l.approval_date,
		   l.rejection_reason, l.created_at, l.updated_at,
		   e.full_name, e.employee_code, lt.name, ap.full_name
	FROM leaves l
	JOIN employees e ON e.id = l.employee_id
	JOIN leave_types lt ON lt.id = l.leave_type_id
	LEFT JOIN employees ap ON ap.id = l.approved_by
`

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.LeaveTypeID, &l.FromDate, &l.ToDate,
		&l.NumberOfDays, &l.Reason, &l.Status, &l.ApprovedBy, &l.ApprovalDate,
		&l.RejectionReason, &l.CreatedAt, &l.UpdatedAt,
		&l.EmployeeName, &l.EmployeeCode, &l.LeaveTypeName, &l.ApproverName,
	)
	return l, err
}

func (r *leaveRepositoryImpl) list(ctx context.Context, where string, args ...interface{}) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveSelect+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	leaves := make([]leave.Leave, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}

	return leaves, nil
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.Leave{}, err
	}

	query := `
		INSERT INTO leaves (
			id, employee_id, leave_type_id, from_date, to_date,
			number_of_days, reason, status
		) VALUES (
			$1, $2, $3, $4::date, $5::date, $6, $7, $8
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id,
		l.EmployeeID,
		l.LeaveTypeID,
		dateParam(l.FromDate),
		dateParam(l.ToDate),
		l.NumberOfDays,
		l.Reason,
		l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave by id: %w", err)
	}
	return l, nil
}

// GetForUpdate implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetForUpdate(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+` WHERE l.id = $1 FOR UPDATE OF l`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to lock leave: %w", err)
	}
	return l, nil
}

// Update implements leave.LeaveRepository. Only the decision fields change.
func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	var approvalDate *string
	if l.ApprovalDate != nil {
		d := dateParam(*l.ApprovalDate)
		approvalDate = &d
	}

	query := `
		UPDATE leaves
		SET status = $1,
			approved_by = $2,
			approval_date = $3::date,
			rejection_reason = $4,
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		l.Status, l.ApprovedBy, approvalDate, l.RejectionReason, l.ID,
	).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to update leave: %w", err)
	}

	return l, nil
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	return r.list(ctx, ` WHERE l.employee_id = $1 ORDER BY l.from_date DESC, l.id DESC`, employeeID)
}

// ListByEmployeeYear implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.Leave, error) {
	return r.list(ctx,
		` WHERE l.employee_id = $1 AND EXTRACT(YEAR FROM l.from_date) = $2 ORDER BY l.from_date DESC, l.id DESC`,
		employeeID, year,
	)
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, status *leave.Status) ([]leave.Leave, error) {
	if status == nil {
		return r.list(ctx, ` ORDER BY l.id DESC NULLS LAST`)
	}
	return r.list(ctx, ` WHERE l.status = $1 ORDER BY l.id DESC NULLS LAST`, *status)
}

// HasApprovedOverlap implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) HasApprovedOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leaves
			WHERE employee_id = $1
			  AND status = $2
			  AND from_date <= $4::date
			  AND to_date >= $3::date
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, leave.StatusApproved, dateParam(from), dateParam(to)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check overlapping leaves: %w", err)
	}
	return exists, nil
}
