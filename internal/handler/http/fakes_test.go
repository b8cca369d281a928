package http

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
)

// fakeAttendanceService records the arguments it was called with. Methods a
// test does not override panic through the nil embedded interface.
type fakeAttendanceService struct {
	attendance.AttendanceService

	err        error
	today      *attendance.AttendanceResponse
	record     attendance.AttendanceResponse
	export     attendance.Export
	employeeID string
	start, end time.Time
	marked     attendance.MarkAttendanceRequest
}

func (f *fakeAttendanceService) ClockIn(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	f.employeeID = employeeID
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return attendance.AttendanceResponse{EmployeeID: employeeID, Status: string(attendance.StatusPresent)}, nil
}

func (f *fakeAttendanceService) ClockOut(ctx context.Context, employeeID string) (attendance.AttendanceResponse, error) {
	f.employeeID = employeeID
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return attendance.AttendanceResponse{EmployeeID: employeeID}, nil
}

func (f *fakeAttendanceService) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	f.marked = req
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, AttendanceDate: req.AttendanceDate}, nil
}

func (f *fakeAttendanceService) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if f.err != nil {
		return attendance.AttendanceResponse{}, f.err
	}
	return f.record, nil
}

func (f *fakeAttendanceService) GetTodayAttendance(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	f.employeeID = employeeID
	return f.today, f.err
}

func (f *fakeAttendanceService) GetMonthlyAttendance(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.AttendanceResponse, error) {
	f.employeeID, f.start, f.end = employeeID, start, end
	return []attendance.AttendanceResponse{}, f.err
}

func (f *fakeAttendanceService) GetSummary(ctx context.Context, employeeID string, start, end time.Time) (attendance.SummaryResponse, error) {
	f.employeeID, f.start, f.end = employeeID, start, end
	return attendance.SummaryResponse{EmployeeID: employeeID, Month: start.Format("2006-01")}, f.err
}

func (f *fakeAttendanceService) ExportMonthly(ctx context.Context, employeeID string, start, end time.Time) (attendance.Export, error) {
	f.employeeID, f.start, f.end = employeeID, start, end
	return f.export, f.err
}

type fakeLeaveService struct {
	leave.LeaveService

	err        error
	leave      leave.LeaveResponse
	applied    leave.ApplyLeaveRequest
	approverID string
	rejected   leave.RejectLeaveRequest
	status     *leave.Status
	year       int
}

func (f *fakeLeaveService) ApplyLeave(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	f.applied = req
	if f.err != nil {
		return leave.LeaveResponse{}, f.err
	}
	return leave.LeaveResponse{EmployeeID: req.EmployeeID, Status: string(leave.StatusPending)}, nil
}

func (f *fakeLeaveService) ApproveLeave(ctx context.Context, leaveID, approverID string) (leave.LeaveResponse, error) {
	f.approverID = approverID
	if f.err != nil {
		return leave.LeaveResponse{}, f.err
	}
	return leave.LeaveResponse{ID: leaveID, Status: string(leave.StatusApproved), ApprovedBy: &approverID}, nil
}

func (f *fakeLeaveService) RejectLeave(ctx context.Context, leaveID string, req leave.RejectLeaveRequest, approverID string) (leave.LeaveResponse, error) {
	f.approverID = approverID
	f.rejected = req
	if f.err != nil {
		return leave.LeaveResponse{}, f.err
	}
	return leave.LeaveResponse{ID: leaveID, Status: string(leave.StatusRejected)}, nil
}

func (f *fakeLeaveService) GetLeave(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.leave, f.err
}

func (f *fakeLeaveService) GetAllLeaves(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error) {
	f.status = status
	return []leave.LeaveResponse{}, f.err
}

func (f *fakeLeaveService) GetEmployeeBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalanceResponse, error) {
	f.year = year
	return []leave.LeaveBalanceResponse{}, f.err
}

func (f *fakeLeaveService) ListActiveLeaveTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	return []leave.LeaveTypeResponse{{Name: "Annual", TotalDays: 12, IsActive: true}}, f.err
}
