package attendance

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

const testEmployeeID = "0190a1b2-7c3d-7e4f-8a5b-6c7d8e9f0a1b"

func TestMarkAttendanceRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        MarkAttendanceRequest
		wantFields []string
	}{
		{
			name: "valid minimal",
			req:  MarkAttendanceRequest{EmployeeID: testEmployeeID, AttendanceDate: "2024-03-11"},
		},
		{
			name: "valid full",
			req: MarkAttendanceRequest{
				EmployeeID:     testEmployeeID,
				AttendanceDate: "2024-03-11",
				AttendanceEntry: AttendanceEntry{
					ClockInTime:  strPtr("09:10"),
					ClockOutTime: strPtr("17:40"),
					Status:       "PRESENT",
					WorkingHours: hoursPtr(8.5),
				},
			},
		},
		{
			name:       "missing employee and date",
			req:        MarkAttendanceRequest{},
			wantFields: []string{"employee_id", "attendance_date"},
		},
		{
			name:       "bad status",
			req:        MarkAttendanceRequest{EmployeeID: testEmployeeID, AttendanceDate: "2024-03-11", AttendanceEntry: AttendanceEntry{Status: "WFH"}},
			wantFields: []string{"status"},
		},
		{
			name: "clock out before clock in",
			req: MarkAttendanceRequest{
				EmployeeID:      testEmployeeID,
				AttendanceDate:  "2024-03-11",
				AttendanceEntry: AttendanceEntry{ClockInTime: strPtr("10:00"), ClockOutTime: strPtr("09:00")},
			},
			wantFields: []string{"clock_out_time"},
		},
		{
			name: "clock out without clock in",
			req: MarkAttendanceRequest{
				EmployeeID:      testEmployeeID,
				AttendanceDate:  "2024-03-11",
				AttendanceEntry: AttendanceEntry{ClockOutTime: strPtr("17:00")},
			},
			wantFields: []string{"clock_in_time"},
		},
		{
			name: "working hours out of range",
			req: MarkAttendanceRequest{
				EmployeeID:      testEmployeeID,
				AttendanceDate:  "2024-03-11",
				AttendanceEntry: AttendanceEntry{WorkingHours: hoursPtr(25)},
			},
			wantFields: []string{"working_hours"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := verrs.ToMap()
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestAttendanceEntry_TimesAndDefaults(t *testing.T) {
	entry := AttendanceEntry{ClockInTime: strPtr("09:05"), ClockOutTime: strPtr("17:35:20")}
	day := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)

	in, out := entry.Times(day)
	require.NotNil(t, in)
	require.NotNil(t, out)
	assert.Equal(t, time.Date(2024, time.March, 11, 9, 5, 0, 0, time.UTC), *in)
	assert.Equal(t, time.Date(2024, time.March, 11, 17, 35, 20, 0, time.UTC), *out)
	assert.Equal(t, StatusPresent, entry.StatusOrDefault())

	entry.Status = "HOLIDAY"
	assert.Equal(t, StatusHoliday, entry.StatusOrDefault())
}

func TestNewAttendanceResponse(t *testing.T) {
	a := Attendance{
		ID:         "att-1",
		EmployeeID: testEmployeeID,
		Date:       time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		Status:     StatusPresent,
		IsLate:     true,
	}

	resp := NewAttendanceResponse(a)
	assert.Equal(t, "2024-03-11", resp.AttendanceDate)
	assert.Equal(t, "PRESENT", resp.Status)
	assert.True(t, resp.IsLate)
	assert.Nil(t, resp.WorkingHours)
}
