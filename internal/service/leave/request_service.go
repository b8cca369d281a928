package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/database"
)

// RequestService drives the PENDING -> APPROVED | REJECTED lifecycle. Every
// transition writes the leave row and its balance in one transaction.
type RequestService struct {
	tx database.Transactor
	leave.LeaveTypeRepository
	leave.LeaveRepository
	employee.EmployeeRepository
	balances *BalanceService
	loc      *time.Location
	now      func() time.Time
}

func NewRequestService(
	tx database.Transactor,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRepository leave.LeaveRepository,
	employeeRepository employee.EmployeeRepository,
	balances *BalanceService,
	loc *time.Location,
) *RequestService {
	if loc == nil {
		loc = time.Local
	}
	return &RequestService{
		tx:                  tx,
		LeaveTypeRepository: leaveTypeRepository,
		LeaveRepository:     leaveRepository,
		EmployeeRepository:  employeeRepository,
		balances:            balances,
		loc:                 loc,
		now:                 time.Now,
	}
}

func (r *RequestService) today() time.Time {
	y, m, d := r.now().In(r.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.loc)
}

func (r *RequestService) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := r.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, err
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// Apply creates a PENDING leave and reserves its days on the balance for the
// year of the from date.
func (r *RequestService) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}
	from, to := req.Dates()

	var created leave.Leave
	err := r.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := r.getEmployee(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		leaveType, err := r.LeaveTypeRepository.GetByID(txCtx, req.LeaveTypeID)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveTypeNotFound) {
				return err
			}
			return fmt.Errorf("failed to get leave type: %w", err)
		}

		if from.After(to) {
			return leave.ErrInvalidDateRange
		}
		if !leaveType.IsActive {
			return leave.ErrLeaveTypeInactive
		}

		days := leave.InclusiveDays(from, to)

		overlap, err := r.LeaveRepository.HasApprovedOverlap(txCtx, emp.ID, from, to)
		if err != nil {
			return fmt.Errorf("failed to check overlapping leaves: %w", err)
		}
		if overlap {
			return leave.ErrOverlappingLeave
		}

		year := from.Year()
		if _, err := r.balances.GetOrCreate(txCtx, emp.ID, leaveType, year); err != nil {
			return err
		}
		balance, err := r.balances.Lock(txCtx, emp.ID, leaveType.ID, year)
		if err != nil {
			return err
		}
		if !balance.CanCover(days) {
			return fmt.Errorf("%w. Available: %d days", leave.ErrInsufficientBalance, balance.RemainingDays)
		}

		created, err = r.LeaveRepository.Create(txCtx, leave.Leave{
			EmployeeID:   emp.ID,
			LeaveTypeID:  leaveType.ID,
			FromDate:     from,
			ToDate:       to,
			NumberOfDays: days,
			Reason:       req.Reason,
			Status:       leave.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave: %w", err)
		}

		if _, err := r.balances.Reserve(txCtx, balance, days); err != nil {
			return err
		}

		created.EmployeeName = &emp.FullName
		created.EmployeeCode = &emp.EmployeeCode
		created.LeaveTypeName = &leaveType.Name
		return nil
	})
	if err != nil {
		return leave.Leave{}, err
	}

	slog.Info("leave applied", "leave_id", created.ID, "employee_id", created.EmployeeID, "leave_type_id", created.LeaveTypeID, "days", created.NumberOfDays)
	return created, nil
}

// approverName returns nil when the actor has no employee record.
func (r *RequestService) approverName(ctx context.Context, approverID string) (*string, error) {
	approver, err := r.getEmployee(ctx, approverID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &approver.FullName, nil
}

// decide locks a PENDING leave and its balance, records the decision and
// lets apply settle the balance.
func (r *RequestService) decide(
	ctx context.Context,
	leaveID, approverID string,
	decision func(l *leave.Leave),
	apply func(ctx context.Context, balance leave.LeaveBalance, days int) (leave.LeaveBalance, error),
) (leave.Leave, error) {
	var updated leave.Leave
	err := r.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		l, err := r.LeaveRepository.GetForUpdate(txCtx, leaveID)
		if err != nil {
			if errors.Is(err, leave.ErrLeaveNotFound) {
				return err
			}
			return fmt.Errorf("failed to get leave: %w", err)
		}
		if l.Status != leave.StatusPending {
			return leave.ErrLeaveAlreadyProcessed
		}

		approverName, err := r.approverName(txCtx, approverID)
		if err != nil {
			return err
		}

		balance, err := r.balances.Lock(txCtx, l.EmployeeID, l.LeaveTypeID, l.Year())
		if err != nil {
			return err
		}

		today := r.today()
		l.ApprovedBy = &approverID
		l.ApprovalDate = &today
		l.ApproverName = approverName
		decision(&l)

		updated, err = r.LeaveRepository.Update(txCtx, l)
		if err != nil {
			return fmt.Errorf("failed to update leave: %w", err)
		}

		if _, err := apply(txCtx, balance, l.NumberOfDays); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return leave.Leave{}, err
	}
	return updated, nil
}

func (r *RequestService) Approve(ctx context.Context, leaveID, approverID string) (leave.Leave, error) {
	updated, err := r.decide(ctx, leaveID, approverID, func(l *leave.Leave) {
		l.Status = leave.StatusApproved
	}, r.balances.Commit)
	if err != nil {
		return leave.Leave{}, err
	}

	slog.Info("leave approved", "leave_id", updated.ID, "approved_by", approverID, "days", updated.NumberOfDays)
	return updated, nil
}

func (r *RequestService) Reject(ctx context.Context, leaveID string, req leave.RejectLeaveRequest, approverID string) (leave.Leave, error) {
	if err := req.Validate(); err != nil {
		return leave.Leave{}, err
	}

	updated, err := r.decide(ctx, leaveID, approverID, func(l *leave.Leave) {
		l.Status = leave.StatusRejected
		l.RejectionReason = &req.Reason
	}, r.balances.Release)
	if err != nil {
		return leave.Leave{}, err
	}

	slog.Info("leave rejected", "leave_id", updated.ID, "rejected_by", approverID, "days", updated.NumberOfDays)
	return updated, nil
}
