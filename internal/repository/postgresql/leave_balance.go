package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveBalanceColumns = `
	lb.id, lb.employee_id, lb.leave_type_id, lb.year,
	lb.total_days, lb.used_days, lb.pending_days, lb.remaining_days,
	lb.created_at, lb.updated_at
`

type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

func scanLeaveBalance(row pgx.Row, extra ...interface{}) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	dest := []interface{}{
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year,
		&b.TotalDays, &b.UsedDays, &b.PendingDays, &b.RemainingDays,
		&b.CreatedAt, &b.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return b, err
}

func (r *leaveBalanceRepositoryImpl) getOne(ctx context.Context, suffix string, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `
		FROM leave_balances lb
		WHERE lb.employee_id = $1 AND lb.leave_type_id = $2 AND lb.year = $3` + suffix

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}
	return b, nil
}

// GetOrCreate implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetOrCreate(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return leave.LeaveBalance{}, err
	}

	// Concurrent first reads race on the unique key; the loser falls
	// through to the SELECT.
	query := `
		INSERT INTO leave_balances AS lb (id, employee_id, leave_type_id, year, total_days, used_days, pending_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
		RETURNING ` + leaveBalanceColumns

	created, err := scanLeaveBalance(q.QueryRow(ctx, query,
		id, balance.EmployeeID, balance.LeaveTypeID, balance.Year,
		balance.TotalDays, balance.UsedDays, balance.PendingDays,
	))
	if err == nil {
		created.LeaveTypeName = balance.LeaveTypeName
		return created, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	existing, err := r.GetByEmployeeTypeYear(ctx, balance.EmployeeID, balance.LeaveTypeID, balance.Year)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	existing.LeaveTypeName = balance.LeaveTypeName
	return existing, nil
}

// GetByEmployeeTypeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return r.getOne(ctx, "", employeeID, leaveTypeID, year)
}

// GetForUpdate implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	return r.getOne(ctx, " FOR UPDATE", employeeID, leaveTypeID, year)
}

// ListByEmployeeYear implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveBalanceColumns + `, lt.name
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.employee_id = $1 AND lb.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave balances: %w", err)
	}
	defer rows.Close()

	balances := make([]leave.LeaveBalance, 0)
	for rows.Next() {
		var name string
		b, err := scanLeaveBalance(rows, &name)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		b.LeaveTypeName = &name
		balances = append(balances, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave balances: %w", err)
	}

	return balances, nil
}

// AddPending implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) AddPending(ctx context.Context, id string, days int) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances AS lb
		SET pending_days = pending_days + $1,
			updated_at = NOW()
		WHERE id = $2
		AND remaining_days >= $1
		RETURNING ` + leaveBalanceColumns

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, days, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrInsufficientBalance
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to reserve pending days: %w", err)
	}
	return b, nil
}

// UpdateCounters implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) UpdateCounters(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances AS lb
		SET used_days = $1,
			pending_days = $2,
			updated_at = NOW()
		WHERE id = $3
		RETURNING ` + leaveBalanceColumns

	b, err := scanLeaveBalance(q.QueryRow(ctx, query, balance.UsedDays, balance.PendingDays, balance.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to update leave balance: %w", err)
	}
	b.LeaveTypeName = balance.LeaveTypeName
	return b, nil
}
