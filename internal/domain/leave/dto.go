package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/validator"
)

const maxLeaveTypeDays = 366

type CreateLeaveTypeRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	TotalDays   *int    `json:"total_days"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 100 {
		errs.Add("name", "name must not exceed 100 characters")
	}

	if r.TotalDays == nil {
		errs.Add("total_days", "total_days is required")
	} else if *r.TotalDays < 0 || *r.TotalDays > maxLeaveTypeDays {
		errs.Add("total_days", "total_days must be between 0 and 366")
	}

	return errs.OrNil()
}

// UpdateLeaveTypeRequest only changes the fields that are set.
type UpdateLeaveTypeRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	TotalDays   *int    `json:"total_days,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Description == nil && r.TotalDays == nil && r.IsActive == nil {
		errs.Add("body", "at least one field must be provided")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 100 {
			errs.Add("name", "name must not exceed 100 characters")
		}
	}
	if r.TotalDays != nil && (*r.TotalDays < 0 || *r.TotalDays > maxLeaveTypeDays) {
		errs.Add("total_days", "total_days must be between 0 and 366")
	}

	return errs.OrNil()
}

// Apply copies the set fields onto lt.
func (r *UpdateLeaveTypeRequest) Apply(lt *LeaveType) {
	if r.Name != nil {
		lt.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		lt.Description = r.Description
	}
	if r.TotalDays != nil {
		lt.TotalDays = *r.TotalDays
	}
	if r.IsActive != nil {
		lt.IsActive = *r.IsActive
	}
}

type ApplyLeaveRequest struct {
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	FromDate    string  `json:"from_date"`
	ToDate      string  `json:"to_date"`
	Reason      *string `json:"reason,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id is required")
	} else if !validator.IsValidUUID(r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id must be a valid UUID")
	}

	if validator.IsEmpty(r.FromDate) {
		errs.Add("from_date", "from_date is required")
	} else if _, ok := validator.IsValidDate(r.FromDate); !ok {
		errs.Add("from_date", "from_date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.ToDate) {
		errs.Add("to_date", "to_date is required")
	} else if _, ok := validator.IsValidDate(r.ToDate); !ok {
		errs.Add("to_date", "to_date must be in YYYY-MM-DD format")
	}

	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.OrNil()
}

// Dates returns the parsed range. Call after validation.
func (r *ApplyLeaveRequest) Dates() (from, to time.Time) {
	from, _ = validator.IsValidDate(r.FromDate)
	to, _ = validator.IsValidDate(r.ToDate)
	return from, to
}

type RejectLeaveRequest struct {
	Reason string `json:"rejection_reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs.Add("rejection_reason", "rejection_reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("rejection_reason", "rejection_reason must not exceed 1000 characters")
	}

	return errs.OrNil()
}

type LeaveTypeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	TotalDays   int       `json:"total_days"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewLeaveTypeResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID,
		Name:        lt.Name,
		Description: lt.Description,
		TotalDays:   lt.TotalDays,
		IsActive:    lt.IsActive,
		CreatedAt:   lt.CreatedAt,
		UpdatedAt:   lt.UpdatedAt,
	}
}

func NewLeaveTypeResponses(types []LeaveType) []LeaveTypeResponse {
	result := make([]LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		result = append(result, NewLeaveTypeResponse(lt))
	}
	return result
}

type LeaveBalanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	Year          int     `json:"year"`
	TotalDays     int     `json:"total_days"`
	UsedDays      int     `json:"used_days"`
	PendingDays   int     `json:"pending_days"`
	RemainingDays int     `json:"remaining_days"`
}

func NewLeaveBalanceResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		LeaveTypeName: b.LeaveTypeName,
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		PendingDays:   b.PendingDays,
		RemainingDays: b.RemainingDays,
	}
}

func NewLeaveBalanceResponses(balances []LeaveBalance) []LeaveBalanceResponse {
	result := make([]LeaveBalanceResponse, 0, len(balances))
	for _, b := range balances {
		result = append(result, NewLeaveBalanceResponse(b))
	}
	return result
}

type LeaveResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    *string   `json:"employee_name,omitempty"`
	EmployeeCode    *string   `json:"employee_code,omitempty"`
	LeaveTypeID     string    `json:"leave_type_id"`
	LeaveTypeName   *string   `json:"leave_type_name,omitempty"`
	FromDate        string    `json:"from_date"`
	ToDate          string    `json:"to_date"`
	NumberOfDays    int       `json:"number_of_days"`
	Reason          *string   `json:"reason,omitempty"`
	Status          string    `json:"status"`
	ApprovedBy      *string   `json:"approved_by,omitempty"`
	ApproverName    *string   `json:"approver_name,omitempty"`
	ApprovalDate    *string   `json:"approval_date,omitempty"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewLeaveResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID,
		EmployeeID:      l.EmployeeID,
		EmployeeName:    l.EmployeeName,
		EmployeeCode:    l.EmployeeCode,
		LeaveTypeID:     l.LeaveTypeID,
		LeaveTypeName:   l.LeaveTypeName,
		FromDate:        l.FromDate.Format(validator.DateLayout),
		ToDate:          l.ToDate.Format(validator.DateLayout),
		NumberOfDays:    l.NumberOfDays,
		Reason:          l.Reason,
		Status:          string(l.Status),
		ApprovedBy:      l.ApprovedBy,
		ApproverName:    l.ApproverName,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.ApprovalDate != nil {
		d := l.ApprovalDate.Format(validator.DateLayout)
		resp.ApprovalDate = &d
	}
	return resp
}

func NewLeaveResponses(leaves []Leave) []LeaveResponse {
	result := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		result = append(result, NewLeaveResponse(l))
	}
	return result
}
