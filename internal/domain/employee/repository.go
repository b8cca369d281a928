package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Exists(ctx context.Context, id string) (bool, error)
}
