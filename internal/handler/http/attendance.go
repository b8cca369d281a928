package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-core-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListByDate(w http.ResponseWriter, r *http.Request)
	ListByEmployee(w http.ResponseWriter, r *http.Request)
	GetMonthly(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, loc *time.Location) AttendanceHandler {
	if loc == nil {
		loc = time.Local
	}
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		loc:               loc,
		now:               time.Now,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}
	if err := authorizeEmployee(r, employeeID, user.PermissionAttendanceManage); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}
	if err := authorizeEmployee(r, employeeID, user.PermissionAttendanceManage); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MarkAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.UpdateAttendance(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if err := authorizeEmployee(r, result.EmployeeID, user.PermissionAttendanceViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}
	if err := authorizeEmployee(r, employeeID, user.PermissionAttendanceViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetTodayAttendance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.SuccessWithMessage(w, "No attendance recorded today", nil)
		return
	}

	response.Success(w, result)
}

// ListByDate implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByDate(w http.ResponseWriter, r *http.Request) {
	date, ok := validator.IsValidDate(chi.URLParam(r, "date"))
	if !ok {
		response.BadRequest(w, "Date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.GetAttendanceByDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByEmployee implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return
	}
	if err := authorizeEmployee(r, employeeID, user.PermissionAttendanceViewAll); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthly implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthly(w http.ResponseWriter, r *http.Request) {
	employeeID, start, end, ok := h.rangeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetMonthlyAttendance(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID, start, end, ok := h.rangeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetSummary(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements AttendanceHandler.
func (h *attendanceHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	employeeID, start, end, ok := h.rangeRequest(w, r)
	if !ok {
		return
	}

	export, err := h.attendanceService.ExportMonthly(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := response.Attachment(w, export.ContentType, export.FileName, export.Content); err != nil {
		slog.Error("Failed to write attendance export", "error", err, "employee_id", employeeID)
	}
}

func (h *attendanceHandlerImpl) idParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	return uuidParam(w, r, "id", "Attendance ID")
}

func (h *attendanceHandlerImpl) employeeParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	return uuidParam(w, r, "employeeID", "Employee ID")
}

// rangeRequest resolves the employee and period shared by monthly, summary
// and export.
func (h *attendanceHandlerImpl) rangeRequest(w http.ResponseWriter, r *http.Request) (string, time.Time, time.Time, bool) {
	employeeID, ok := h.employeeParam(w, r)
	if !ok {
		return "", time.Time{}, time.Time{}, false
	}
	if err := authorizeEmployee(r, employeeID, user.PermissionAttendanceViewAll); err != nil {
		response.HandleError(w, err)
		return "", time.Time{}, time.Time{}, false
	}

	start, end, errs := dateRange(r, h.now().In(h.loc))
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return "", time.Time{}, time.Time{}, false
	}
	return employeeID, start, end, true
}
