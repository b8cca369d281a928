package employee

import "time"

// Employee is the read-only view of master data the attendance and leave
// modules need. The record itself is owned elsewhere.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
