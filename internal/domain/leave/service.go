package leave

import (
	"context"
)

type LeaveService interface {
	// Type
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateLeaveType(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetLeaveType(ctx context.Context, id string) (LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	ListActiveLeaveTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	DeleteLeaveType(ctx context.Context, id string) error

	// Balance
	GetLeaveBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalanceResponse, error)
	GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)
	InitializeBalances(ctx context.Context, employeeID string, year int) ([]LeaveBalanceResponse, error)

	// Request
	ApplyLeave(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	ApproveLeave(ctx context.Context, leaveID, approverID string) (LeaveResponse, error)
	RejectLeave(ctx context.Context, leaveID string, req RejectLeaveRequest, approverID string) (LeaveResponse, error)
	GetLeave(ctx context.Context, id string) (LeaveResponse, error)
	GetEmployeeLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetEmployeeLeavesByYear(ctx context.Context, employeeID string, year int) ([]LeaveResponse, error)
	GetPendingLeaves(ctx context.Context) ([]LeaveResponse, error)

	// GetAllLeaves filters by status when it is non-nil.
	GetAllLeaves(ctx context.Context, status *Status) ([]LeaveResponse, error)
}
