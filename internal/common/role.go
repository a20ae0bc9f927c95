package common

// Role identifies a ClinicLink account type. The set is fixed; every user
// carries exactly one role and consumers render role-conditional views from it.
type Role string

const (
	RoleStudent      Role = "student"
	RolePreceptor    Role = "preceptor"
	RoleSiteManager  Role = "site_manager"
	RoleCoordinator  Role = "coordinator"
	RoleProfessor    Role = "professor"
	RoleAdmin        Role = "admin"
	RolePractitioner Role = "practitioner"
)

// Roles lists every valid role, in a stable order.
func Roles() []Role {
	return []Role{
		RoleStudent,
		RolePreceptor,
		RoleSiteManager,
		RoleCoordinator,
		RoleProfessor,
		RoleAdmin,
		RolePractitioner,
	}
}

// ParseRole validates s against the fixed role set.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}
