package auth

// Role is carried in the access token's role claim.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleOwner    Role = "owner"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleOwner:
		return true
	}
	return false
}

// CanCorrectAttendance reports whether r may edit other employees' punches.
func (r Role) CanCorrectAttendance() bool {
	return r == RoleManager || r == RoleOwner
}
