package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
	ListActive(ctx context.Context) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	Delete(ctx context.Context, id string) error
}

// LeaveBalanceRepository - interface for leave_balances table
type LeaveBalanceRepository interface {
	// GetOrCreate inserts balance unless a row for its key exists, and
	// returns the stored row either way.
	GetOrCreate(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)

	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)

	// AddPending reserves days only while remaining covers them, else
	// ErrInsufficientBalance.
	AddPending(ctx context.Context, id string, days int) (LeaveBalance, error)
	UpdateCounters(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
}

// LeaveRepository - interface for leaves table
type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)

	// GetForUpdate locks the leave row so concurrent decisions serialize.
	GetForUpdate(ctx context.Context, id string) (Leave, error)
	Update(ctx context.Context, l Leave) (Leave, error)

	// ListByEmployee is ordered newest from date first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Leave, error)

	// List filters by status when it is non-nil.
	List(ctx context.Context, status *Status) ([]Leave, error)
	HasApprovedOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
}
