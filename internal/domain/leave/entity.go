package leave

import (
	"time"
)

// LeaveType is a named leave category with an annual allotment.
type LeaveType struct {
	ID          string
	Name        string
	Description *string
	TotalDays   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LeaveBalance is the ledger row for one (employee, leave type, year).
// RemainingDays always equals TotalDays - UsedDays - PendingDays.
type LeaveBalance struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	Year          int
	TotalDays     int
	UsedDays      int
	PendingDays   int
	RemainingDays int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	LeaveTypeName *string
}

// NewLeaveBalance seeds a full-allotment balance from the leave type's
// current total.
func NewLeaveBalance(employeeID string, leaveType LeaveType, year int) LeaveBalance {
	b := LeaveBalance{
		EmployeeID:    employeeID,
		LeaveTypeID:   leaveType.ID,
		Year:          year,
		TotalDays:     leaveType.TotalDays,
		LeaveTypeName: &leaveType.Name,
	}
	b.recompute()
	return b
}

// CanCover reports whether days fit in the remaining allotment.
func (b *LeaveBalance) CanCover(days int) bool {
	return b.RemainingDays >= days
}

func (b *LeaveBalance) ReservePending(days int) {
	b.PendingDays += days
	b.recompute()
}

// CommitUsed moves days from pending to used.
func (b *LeaveBalance) CommitUsed(days int) {
	b.PendingDays = max(0, b.PendingDays-days)
	b.UsedDays += days
	b.recompute()
}

func (b *LeaveBalance) ReleasePending(days int) {
	b.PendingDays = max(0, b.PendingDays-days)
	b.recompute()
}

func (b *LeaveBalance) recompute() {
	b.RemainingDays = b.TotalDays - b.UsedDays - b.PendingDays
}

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Leave is a request for a contiguous, inclusive range of calendar days.
type Leave struct {
	ID              string
	EmployeeID      string
	LeaveTypeID     string
	FromDate        time.Time
	ToDate          time.Time
	NumberOfDays    int
	Reason          *string
	Status          Status
	ApprovedBy      *string
	ApprovalDate    *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Relationships (for responses)
	EmployeeName  *string
	EmployeeCode  *string
	LeaveTypeName *string
	ApproverName  *string
}

// Year is the ledger year the leave is charged to.
func (l Leave) Year() int {
	return l.FromDate.Year()
}

// Overlaps reports whether [from, to] intersects the leave's range.
func (l Leave) Overlaps(from, to time.Time) bool {
	return !civilDay(l.FromDate).After(civilDay(to)) && !civilDay(l.ToDate).Before(civilDay(from))
}

// InclusiveDays counts calendar days from from to to, both included.
func InclusiveDays(from, to time.Time) int {
	return int(civilDay(to).Sub(civilDay(from))/(24*time.Hour)) + 1
}

// civilDay drops the clock and zone so day arithmetic ignores DST.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
