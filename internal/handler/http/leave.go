package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	GetType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	ListActiveTypes(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)

	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	ListByEmployeeYear(w http.ResponseWriter, r *http.Request)

	GetBalance(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
	InitializeBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", result)
}

// UpdateType implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Leave type ID")
	if !ok {
		return
	}

	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := l.leaveService.UpdateLeaveType(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated successfully", result)
}

// GetType implements LeaveHandler.
func (l *LeaveHandlerImpl) GetType(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Leave type ID")
	if !ok {
		return
	}

	result, err := l.leaveService.GetLeaveType(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListActiveTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListActiveTypes(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.ListActiveLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteType implements LeaveHandler.
func (l *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Leave type ID")
	if !ok {
		return
	}

	if err := l.leaveService.DeleteLeaveType(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted successfully", nil)
}

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApplyLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Employees file for themselves unless the body names someone else and
	// the caller manages balances.
	if req.EmployeeID == "" {
		employeeID, err := currentEmployeeID(r)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		req.EmployeeID = employeeID
	} else if err := authorizeEmployee(r, req.EmployeeID, user.PermissionLeaveManageQuota); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.ApplyLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave applied successfully", result)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Leave ID")
	if !ok {
		return
	}

	approverID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.ApproveLeave(r.Context(), id, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave approved successfully", result)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Leave ID")
	if !ok {
		return
	}

	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	approverID, err := currentEmployeeID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.RejectLeave(r.Context(), id, req, approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave rejected successfully", result)
}

// Get implements LeaveHandler.
func (l *LeaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id", "Leave ID")
	if !ok {
		return
	}

	result, err := l.leaveService.GetLeave(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := authorizeEmployee(r, result.EmployeeID, user.PermissionLeaveViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements LeaveHandler.
func (l *LeaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *leave.Status
	if s := r.URL.Query().Get("status"); s != "" {
		st := leave.Status(s)
		if !st.IsValid() {
			response.BadRequest(w, "Status must be one of PENDING, APPROVED, REJECTED, CANCELLED", nil)
			return
		}
		status = &st
	}

	result, err := l.leaveService.GetAllLeaves(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := l.leaveService.GetPendingLeaves(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := l.employeeParam(w, r, user.PermissionLeaveViewAll)
	if !ok {
		return
	}

	result, err := l.leaveService.GetEmployeeLeaves(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployeeYear implements LeaveHandler.
func (l *LeaveHandlerImpl) ListByEmployeeYear(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := l.employeeParam(w, r, user.PermissionLeaveViewAll)
	if !ok {
		return
	}
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.GetEmployeeLeavesByYear(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := l.employeeParam(w, r, user.PermissionLeaveViewAll)
	if !ok {
		return
	}
	leaveTypeID, ok := uuidParam(w, r, "leaveTypeID", "Leave type ID")
	if !ok {
		return
	}
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.GetLeaveBalance(r.Context(), employeeID, leaveTypeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := l.employeeParam(w, r, user.PermissionLeaveViewAll)
	if !ok {
		return
	}
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.GetEmployeeBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// InitializeBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) InitializeBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := uuidParam(w, r, "employeeID", "Employee ID")
	if !ok {
		return
	}
	year, ok := yearParam(w, r)
	if !ok {
		return
	}

	result, err := l.leaveService.InitializeBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave balances initialized successfully", result)
}

func (l *LeaveHandlerImpl) employeeParam(w http.ResponseWriter, r *http.Request, broader user.Permission) (string, bool) {
	employeeID, ok := uuidParam(w, r, "employeeID", "Employee ID")
	if !ok {
		return "", false
	}
	if err := authorizeEmployee(r, employeeID, broader); err != nil {
		response.HandleError(w, err)
		return "", false
	}
	return employeeID, true
}

func uuidParam(w http.ResponseWriter, r *http.Request, key, label string) (string, bool) {
	value := chi.URLParam(r, key)
	if !validator.IsValidUUID(value) {
		response.BadRequest(w, label+" must be a valid UUID", nil)
		return "", false
	}
	return value, true
}

func yearParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, ok := parseYear(chi.URLParam(r, "year"))
	if !ok {
		response.BadRequest(w, "Year must be a four digit number", nil)
		return 0, false
	}
	return year, true
}
