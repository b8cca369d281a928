package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertLedger(t *testing.T, b LeaveBalance) {
	t.Helper()
	assert.Equal(t, b.TotalDays-b.UsedDays-b.PendingDays, b.RemainingDays)
	assert.GreaterOrEqual(t, b.UsedDays, 0)
	assert.GreaterOrEqual(t, b.PendingDays, 0)
}

func TestNewLeaveBalance(t *testing.T) {
	lt := LeaveType{ID: "lt-1", Name: "Annual", TotalDays: 12}

	b := NewLeaveBalance("emp-1", lt, 2024)

	assert.Equal(t, "emp-1", b.EmployeeID)
	assert.Equal(t, "lt-1", b.LeaveTypeID)
	assert.Equal(t, 2024, b.Year)
	assert.Equal(t, 12, b.TotalDays)
	assert.Equal(t, 12, b.RemainingDays)
	assertLedger(t, b)
}

func TestLeaveBalance_Lifecycle(t *testing.T) {
	b := NewLeaveBalance("emp-1", LeaveType{ID: "lt-1", TotalDays: 12}, 2024)

	assert.True(t, b.CanCover(12))
	assert.False(t, b.CanCover(13))

	b.ReservePending(3)
	assert.Equal(t, 3, b.PendingDays)
	assert.Equal(t, 9, b.RemainingDays)
	assertLedger(t, b)

	b.ReservePending(2)
	b.CommitUsed(3)
	assert.Equal(t, 3, b.UsedDays)
	assert.Equal(t, 2, b.PendingDays)
	assert.Equal(t, 7, b.RemainingDays)
	assertLedger(t, b)

	b.ReleasePending(2)
	assert.Equal(t, 0, b.PendingDays)
	assert.Equal(t, 9, b.RemainingDays)
	assertLedger(t, b)
}

func TestLeaveBalance_ClampsPending(t *testing.T) {
	b := NewLeaveBalance("emp-1", LeaveType{ID: "lt-1", TotalDays: 10}, 2024)
	b.ReservePending(1)

	b.ReleasePending(5)
	assert.Equal(t, 0, b.PendingDays)
	assert.Equal(t, 10, b.RemainingDays)

	b.ReservePending(1)
	b.CommitUsed(4)
	assert.Equal(t, 0, b.PendingDays)
	assert.Equal(t, 4, b.UsedDays)
	assert.Equal(t, 6, b.RemainingDays)
	assertLedger(t, b)
}

func TestInclusiveDays(t *testing.T) {
	assert.Equal(t, 1, InclusiveDays(date(2024, time.March, 1), date(2024, time.March, 1)))
	assert.Equal(t, 3, InclusiveDays(date(2024, time.March, 1), date(2024, time.March, 3)))
	assert.Equal(t, 30, InclusiveDays(date(2024, time.February, 1), date(2024, time.March, 1)))
	assert.Equal(t, 2, InclusiveDays(date(2024, time.December, 31), date(2025, time.January, 1)))

	loc := time.FixedZone("X", -5*3600)
	from := time.Date(2024, time.March, 9, 23, 0, 0, 0, loc)
	to := time.Date(2024, time.March, 11, 1, 0, 0, 0, loc)
	assert.Equal(t, 3, InclusiveDays(from, to))
}

func TestLeave_Overlaps(t *testing.T) {
	existing := Leave{FromDate: date(2024, time.March, 10), ToDate: date(2024, time.March, 15)}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want bool
	}{
		{name: "before", from: date(2024, time.March, 1), to: date(2024, time.March, 9), want: false},
		{name: "touching start", from: date(2024, time.March, 5), to: date(2024, time.March, 10), want: true},
		{name: "inside", from: date(2024, time.March, 12), to: date(2024, time.March, 13), want: true},
		{name: "covering", from: date(2024, time.March, 1), to: date(2024, time.March, 31), want: true},
		{name: "touching end", from: date(2024, time.March, 15), to: date(2024, time.March, 20), want: true},
		{name: "after", from: date(2024, time.March, 16), to: date(2024, time.March, 20), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, existing.Overlaps(tt.from, tt.to))
		})
	}
}

func TestLeave_Year(t *testing.T) {
	l := Leave{FromDate: date(2024, time.December, 30), ToDate: date(2025, time.January, 2)}
	assert.Equal(t, 2024, l.Year())
	assert.Equal(t, 4, InclusiveDays(l.FromDate, l.ToDate))
}
