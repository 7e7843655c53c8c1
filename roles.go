package accounts

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser UserRole = "user"
	// RoleAdmin can manage the user directory.
	RoleAdmin UserRole = "admin"
)

var roleHierarchy = map[UserRole]int{
	RoleUser:  0,
	RoleAdmin: 1,
}

// RoleIsValid checks if the role is one of the predefined valid roles.
func RoleIsValid(r UserRole) bool {
	_, ok := roleHierarchy[r]
	return ok
}

// RoleIsAtLeast checks if the role meets the minimum required level.
func RoleIsAtLeast(r, minRole UserRole) bool {
	currentLevel, ok := roleHierarchy[r]
	if !ok {
		return false
	}

	minLevel, ok := roleHierarchy[minRole]
	if !ok {
		return false
	}

	return currentLevel >= minLevel
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleUser,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, RoleIsValid(role)
}
