package leave

import "errors"

var (
	ErrLeaveNotFound         = errors.New("leave not found")
	ErrLeaveAlreadyProcessed = errors.New("only pending leaves can be approved or rejected")
	ErrInvalidDateRange      = errors.New("from date must not be after to date")
	ErrOverlappingLeave      = errors.New("leave overlaps with an approved leave")
	ErrInsufficientBalance   = errors.New("insufficient leave balance")

	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrLeaveTypeNameExists = errors.New("leave type name already exists")
	ErrLeaveTypeInUse      = errors.New("leave type is referenced by balances or leaves")
	ErrLeaveTypeInactive   = errors.New("leave type is not active")

	ErrBalanceNotFound = errors.New("leave balance not found")
)
