package user

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Full access
	RoleHR       Role = "HR"       // Manages attendance, leave types and balances
	RoleManager  Role = "MANAGER"  // Approves leave, views team attendance
	RoleEmployee Role = "EMPLOYEE" // Own attendance and leave only
)

func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

// Actor is the authenticated caller as carried in the access token.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// CanApprove checks if the actor may decide on leave requests
func (a Actor) CanApprove() bool {
	return HasPermission(a.Role, PermissionLeaveApprove)
}
