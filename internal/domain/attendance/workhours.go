package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/utils"
)

// WorkHours is the office day, as offsets from midnight in the process
// location.
type WorkHours struct {
	Start time.Duration
	End   time.Duration
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// At returns the instant offset from midnight of day.
func At(day time.Time, offset time.Duration) time.Time {
	return DateOf(day).Add(offset)
}

func (w WorkHours) StartOn(day time.Time) time.Time {
	return At(day, w.Start)
}

// Lateness reports whether clockIn is strictly after the office start of
// its day, and by how many whole minutes.
func (w WorkHours) Lateness(clockIn time.Time) (bool, int) {
	start := w.StartOn(clockIn)
	if !clockIn.After(start) {
		return false, 0
	}
	return true, int(clockIn.Sub(start) / time.Minute)
}

func (w WorkHours) ScheduledHours() float64 {
	return utils.Ratio(int64((w.End-w.Start)/time.Minute), 60)
}

// WorkedHours is whole elapsed minutes over 60, rounded to two decimals.
func WorkedHours(clockIn, clockOut time.Time) float64 {
	minutes := int64(clockOut.Sub(clockIn) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return utils.Ratio(minutes, 60)
}

// Summarize counts records by status and lateness. Each record counts as one
// working day.
func Summarize(records []Attendance) Summary {
	var s Summary
	hours := make([]float64, 0, len(records))

	for _, r := range records {
		s.TotalWorkingDays++
		switch r.Status {
		case StatusPresent:
			s.PresentDays++
		case StatusAbsent:
			s.AbsentDays++
		case StatusHalfDay:
			s.HalfDays++
		case StatusLeave:
			s.LeaveDays++
		}
		if r.IsLate {
			s.LateDays++
		}
		if r.WorkingHours != nil {
			hours = append(hours, *r.WorkingHours)
		}
	}

	s.TotalWorkingHours = utils.Sum2(hours)
	s.AttendancePercentage = utils.Percentage(int64(s.PresentDays), int64(s.TotalWorkingDays))
	return s
}
