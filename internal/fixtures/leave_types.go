package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrms-core-go/internal/domain/leave"
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

// DefaultLeaveTypes returns the standard leave types based on Indonesian labor law
func DefaultLeaveTypes() []leave.CreateLeaveTypeRequest {
	return []leave.CreateLeaveTypeRequest{
		// 12 days per year after 12 months employment
		{
			Name:        "Cuti Tahunan",
			Description: strPtr("Annual leave entitlement as per Indonesian Labor Law (12 days/year after 12 months of service)"),
			TotalDays:   intPtr(12),
		},
		{
			Name:        "Cuti Sakit",
			Description: strPtr("Sick leave with doctor's certificate required for more than 1 day"),
			TotalDays:   intPtr(12),
		},
		{
			Name:        "Cuti Menikah",
			Description: strPtr("Leave for the employee's own marriage (3 days)"),
			TotalDays:   intPtr(3),
		},
		// 3 months
		{
			Name:        "Cuti Melahirkan",
			Description: strPtr("Maternity leave, 1.5 months before and 1.5 months after giving birth"),
			TotalDays:   intPtr(90),
		},
		{
			Name:        "Cuti Ayah",
			Description: strPtr("Paternity leave when the employee's wife gives birth (2 days)"),
			TotalDays:   intPtr(2),
		},
		{
			Name:        "Cuti Duka",
			Description: strPtr("Bereavement leave for a spouse, child or parent (2 days)"),
			TotalDays:   intPtr(2),
		},
	}
}

// SeedLeaveTypes creates the defaults that are missing. Types that already
// exist by name are left untouched, so it is safe on every start.
func SeedLeaveTypes(ctx context.Context, leaveService leave.LeaveService) (created int, err error) {
	for _, req := range DefaultLeaveTypes() {
		if _, err := leaveService.CreateLeaveType(ctx, req); err != nil {
			if errors.Is(err, leave.ErrLeaveTypeNameExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed leave type %q: %w", req.Name, err)
		}
		created++
	}

	slog.Info("default leave types seeded", "created", created)
	return created, nil
}
