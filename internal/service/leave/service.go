package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveTypeRepository
	leave.LeaveBalanceRepository
	leave.LeaveRepository
	employee.EmployeeRepository
	balanceService *BalanceService
	requestService *RequestService
}

func (l *LeaveServiceImpl) requireEmployee(ctx context.Context, employeeID string) error {
	exists, err := l.EmployeeRepository.Exists(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check employee: %w", err)
	}
	if !exists {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func (l *LeaveServiceImpl) getLeaveType(ctx context.Context, id string) (leave.LeaveType, error) {
	lt, err := l.LeaveTypeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) {
			return leave.LeaveType{}, err
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	return lt, nil
}

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	created, err := l.LeaveTypeRepository.Create(ctx, leave.LeaveType{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		TotalDays:   *req.TotalDays,
		IsActive:    true,
	})
	if err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNameExists) {
			return leave.LeaveTypeResponse{}, err
		}
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}

	slog.Info("leave type created", "leave_type_id", created.ID, "name", created.Name, "total_days", created.TotalDays)
	return leave.NewLeaveTypeResponse(created), nil
}

// UpdateLeaveType implements leave.LeaveService. Existing balances keep the
// allotment they were seeded with.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, id string, req leave.UpdateLeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	var updated leave.LeaveType
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		lt, err := l.getLeaveType(txCtx, id)
		if err != nil {
			return err
		}
		req.Apply(&lt)

		updated, err = l.LeaveTypeRepository.Update(txCtx, lt)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveTypeNameExists) || errors.Is(err, leave.ErrLeaveTypeNotFound) {
				return err
			}
			return fmt.Errorf("failed to update leave type: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	return leave.NewLeaveTypeResponse(updated), nil
}

// GetLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveType(ctx context.Context, id string) (leave.LeaveTypeResponse, error) {
	lt, err := l.getLeaveType(ctx, id)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}
	return leave.NewLeaveTypeResponse(lt), nil
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := l.LeaveTypeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return leave.NewLeaveTypeResponses(types), nil
}

// ListActiveLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListActiveLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	types, err := l.LeaveTypeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leave types: %w", err)
	}
	return leave.NewLeaveTypeResponses(types), nil
}

// DeleteLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveType(ctx context.Context, id string) error {
	if err := l.LeaveTypeRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, leave.ErrLeaveTypeNotFound) || errors.Is(err, leave.ErrLeaveTypeInUse) {
			return err
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	slog.Info("leave type deleted", "leave_type_id", id)
	return nil
}

// GetLeaveBalance implements leave.LeaveService. A missing balance is
// created at full allotment.
func (l *LeaveServiceImpl) GetLeaveBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalanceResponse, error) {
	if err := l.requireEmployee(ctx, employeeID); err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	lt, err := l.getLeaveType(ctx, leaveTypeID)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}

	balance, err := l.balanceService.GetOrCreate(ctx, employeeID, lt, year)
	if err != nil {
		return leave.LeaveBalanceResponse{}, err
	}
	return leave.NewLeaveBalanceResponse(balance), nil
}

// GetEmployeeBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if err := l.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := l.LeaveBalanceRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	return leave.NewLeaveBalanceResponses(balances), nil
}

// InitializeBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) InitializeBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	if err := l.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := l.balanceService.InitializeForYear(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return leave.NewLeaveBalanceResponses(balances), nil
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	created, err := l.requestService.Apply(ctx, req)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(created), nil
}

// ApproveLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeave(ctx context.Context, leaveID, approverID string) (leave.LeaveResponse, error) {
	updated, err := l.requestService.Approve(ctx, leaveID, approverID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(updated), nil
}

// RejectLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeave(ctx context.Context, leaveID string, req leave.RejectLeaveRequest, approverID string) (leave.LeaveResponse, error) {
	updated, err := l.requestService.Reject(ctx, leaveID, req, approverID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return leave.NewLeaveResponse(updated), nil
}

// GetLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	found, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return leave.NewLeaveResponse(found), nil
}

// GetEmployeeLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetEmployeeLeaves(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	if err := l.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	leaves, err := l.LeaveRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee leaves: %w", err)
	}
	return leave.NewLeaveResponses(leaves), nil
}

// GetEmployeeLeavesByYear implements leave.LeaveService.
func (l *LeaveServiceImpl) GetEmployeeLeavesByYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveResponse, error) {
	if err := l.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	leaves, err := l.LeaveRepository.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee leaves by year: %w", err)
	}
	return leave.NewLeaveResponses(leaves), nil
}

// GetPendingLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetPendingLeaves(ctx context.Context) ([]leave.LeaveResponse, error) {
	pending := leave.StatusPending
	return l.GetAllLeaves(ctx, &pending)
}

// GetAllLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetAllLeaves(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error) {
	leaves, err := l.LeaveRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	return leave.NewLeaveResponses(leaves), nil
}

func NewLeaveService(
	tx database.Transactor,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveBalanceRepo leave.LeaveBalanceRepository,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	balanceService *BalanceService,
	requestService *RequestService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveBalanceRepository: leaveBalanceRepo,
		LeaveRepository:        leaveRepo,
		EmployeeRepository:     employeeRepo,
		balanceService:         balanceService,
		requestService:         requestService,
	}
}
