package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
)

// BalanceService owns the per-employee, per-type, per-year ledger. Mutations
// expect to run inside the caller's transaction.
type BalanceService struct {
	tx database.Transactor
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
}

func NewBalanceService(tx database.Transactor, leaveTypeRepository leave.LeaveTypeRepository, leaveBalanceRepository leave.LeaveBalanceRepository) *BalanceService {
	return &BalanceService{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveBalanceRepository: leaveBalanceRepository,
	}
}

// GetOrCreate returns the balance for the key, seeding it from the leave
// type's current allotment when none exists yet.
func (b *BalanceService) GetOrCreate(ctx context.Context, employeeID string, leaveType leave.LeaveType, year int) (leave.LeaveBalance, error) {
	balance, err := b.LeaveBalanceRepository.GetOrCreate(ctx, leave.NewLeaveBalance(employeeID, leaveType, year))
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to get or create leave balance: %w", err)
	}
	if balance.LeaveTypeName == nil {
		balance.LeaveTypeName = &leaveType.Name
	}
	return balance, nil
}

// Lock reloads the balance with a row lock held until the transaction ends.
func (b *BalanceService) Lock(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	balance, err := b.LeaveBalanceRepository.GetForUpdate(ctx, employeeID, leaveTypeID, year)
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.LeaveBalance{}, err
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to lock leave balance: %w", err)
	}
	return balance, nil
}

// Reserve moves days into pending. The store refuses the reservation when
// the remaining allotment no longer covers it.
func (b *BalanceService) Reserve(ctx context.Context, balance leave.LeaveBalance, days int) (leave.LeaveBalance, error) {
	updated, err := b.LeaveBalanceRepository.AddPending(ctx, balance.ID, days)
	if err != nil {
		if errors.Is(err, leave.ErrInsufficientBalance) {
			return leave.LeaveBalance{}, err
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to reserve leave balance: %w", err)
	}

	slog.Debug("reserved leave days", "balance_id", balance.ID, "days", days, "remaining_days", updated.RemainingDays)
	return updated, nil
}

// Commit moves days from pending to used.
func (b *BalanceService) Commit(ctx context.Context, balance leave.LeaveBalance, days int) (leave.LeaveBalance, error) {
	balance.CommitUsed(days)
	updated, err := b.LeaveBalanceRepository.UpdateCounters(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to commit leave balance: %w", err)
	}

	slog.Debug("committed leave days", "balance_id", balance.ID, "days", days, "used_days", updated.UsedDays)
	return updated, nil
}

// Release returns pending days to the remaining allotment.
func (b *BalanceService) Release(ctx context.Context, balance leave.LeaveBalance, days int) (leave.LeaveBalance, error) {
	balance.ReleasePending(days)
	updated, err := b.LeaveBalanceRepository.UpdateCounters(ctx, balance)
	if err != nil {
		return leave.LeaveBalance{}, fmt.Errorf("failed to release leave balance: %w", err)
	}

	slog.Debug("released leave days", "balance_id", balance.ID, "days", days, "remaining_days", updated.RemainingDays)
	return updated, nil
}

// InitializeForYear creates a full-allotment balance for every active leave
// type the employee has no row for yet. Existing rows are left untouched.
func (b *BalanceService) InitializeForYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	var balances []leave.LeaveBalance
	err := b.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		types, err := b.LeaveTypeRepository.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list active leave types: %w", err)
		}

		for _, lt := range types {
			if _, err := b.GetOrCreate(txCtx, employeeID, lt, year); err != nil {
				return err
			}
		}

		balances, err = b.LeaveBalanceRepository.ListByEmployeeYear(txCtx, employeeID, year)
		if err != nil {
			return fmt.Errorf("failed to list leave balances: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("initialized leave balances", "employee_id", employeeID, "year", year, "balances", len(balances))
	return balances, nil
}
