package attendance

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/excel"
)

var exportHeaders = []string{"Date", "Clock In", "Clock Out", "Status", "Late", "Late Minutes", "Working Hours", "Remarks"}

// ExportMonthly implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ExportMonthly(ctx context.Context, employeeID string, start, end time.Time) (attendance.Export, error) {
	summary, err := a.GetSummary(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Export{}, err
	}

	records, err := a.AttendanceRepository.ListByEmployeeBetween(ctx, employeeID, start, end)
	if err != nil {
		return attendance.Export{}, fmt.Errorf("failed to list attendance in range: %w", err)
	}
	slices.Reverse(records)

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.Date.Format("2006-01-02"),
			a.clockCell(r.ClockIn),
			a.clockCell(r.ClockOut),
			string(r.Status),
			yesNo(r.IsLate),
			r.LateMinutes,
			hoursCell(r.WorkingHours),
			stringCell(r.Remarks),
		})
	}

	content, err := excel.Build(
		excel.Sheet{
			Name:    "Attendance",
			Headers: exportHeaders,
			Rows:    rows,
			Widths:  map[int]float64{0: 12, 1: 10, 2: 10, 3: 10, 6: 14, 7: 40},
		},
		excel.Sheet{
			Name:    "Summary",
			Headers: []string{"Metric", "Value"},
			Rows: [][]interface{}{
				{"Employee", summary.EmployeeName},
				{"Period", start.Format("2006-01-02") + " to " + end.Format("2006-01-02")},
				{"Recorded days", summary.TotalWorkingDays},
				{"Present days", summary.PresentDays},
				{"Absent days", summary.AbsentDays},
				{"Half days", summary.HalfDays},
				{"Leave days", summary.LeaveDays},
				{"Late days", summary.LateDays},
				{"Total working hours", summary.TotalWorkingHours},
				{"Attendance percentage", summary.AttendancePercentage},
				{"Scheduled hours per day", summary.ScheduledHoursPerDay},
			},
			Widths: map[int]float64{0: 26, 1: 28},
		},
	)
	if err != nil {
		return attendance.Export{}, fmt.Errorf("failed to build attendance workbook: %w", err)
	}

	return attendance.Export{
		FileName:    fmt.Sprintf("attendance_%s_%s.xlsx", employeeID, summary.Month),
		ContentType: excel.ContentType,
		Content:     content,
	}, nil
}

func (a *AttendanceServiceImpl) clockCell(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(a.loc).Format("15:04:05")
}

func hoursCell(h *float64) interface{} {
	if h == nil {
		return ""
	}
	return *h
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
