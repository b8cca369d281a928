package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/user"
	"github.com/cmlabs-hris/hrms-core-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-core-go/internal/pkg/validator"
)

// authorizeEmployee lets the caller act on employeeID when it is their own
// record or their role holds the broader permission.
func authorizeEmployee(r *http.Request, employeeID string, broader user.Permission) error {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return user.ErrInvalidToken
	}
	if user.HasPermission(actor.Role, broader) {
		return nil
	}
	if actor.EmployeeID == "" {
		return user.ErrEmployeeIDRequired
	}
	if actor.EmployeeID != employeeID {
		return user.ErrInsufficientPermissions
	}
	return nil
}

// currentEmployeeID is the employee the caller acts as.
func currentEmployeeID(r *http.Request) (string, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return "", user.ErrInvalidToken
	}
	if actor.EmployeeID == "" {
		return "", user.ErrEmployeeIDRequired
	}
	return actor.EmployeeID, nil
}

func parseYear(value string) (int, bool) {
	year, err := strconv.Atoi(value)
	if err != nil || year < 1900 || year > 9999 {
		return 0, false
	}
	return year, true
}

// dateRange reads start_date and end_date, falling back to the whole month
// containing now when either is missing.
func dateRange(r *http.Request, now time.Time) (start, end time.Time, errs validator.ValidationErrors) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")

	if startStr == "" || endStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end = start.AddDate(0, 1, -1)
		return start, end, nil
	}

	start, ok := validator.IsValidDate(startStr)
	if !ok {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	end, ok = validator.IsValidDate(endStr)
	if !ok {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
	return start, end, errs
}
