package models

// Role is an ordered enum: each role includes the privileges of the ones
// below it.
type Role string

const (
	RoleStudent      Role = "student"
	RoleInstructor   Role = "instructor"
	RoleSupportAdmin Role = "support_admin"
	RoleSystemAdmin  Role = "system_admin"
)

// Rank returns the role's position in the privilege order. Unknown roles
// rank below student so they never pass a minimum-role gate.
func (r Role) Rank() int {
	switch r {
	case RoleStudent:
		return 1
	case RoleInstructor:
		return 2
	case RoleSupportAdmin:
		return 3
	case RoleSystemAdmin:
		return 4
	default:
		return 0
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r holds at least the privileges of min.
func (r Role) AtLeast(min Role) bool {
	return r.Rank() >= min.Rank() && r.Valid()
}
