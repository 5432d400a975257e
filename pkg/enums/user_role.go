package enums

import "fmt"

// UserRole is the access level of a console user.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleSales  UserRole = "sales"
	UserRoleViewer UserRole = "viewer"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleSales,
	UserRoleViewer,
}

var userRoleLabels = map[UserRole]string{
	UserRoleAdmin:  "Administrador",
	UserRoleSales:  "Vendedor",
	UserRoleViewer: "Visualizador",
}

// AllUserRoles returns every known role in declaration order.
func AllUserRoles() []UserRole {
	out := make([]UserRole, len(validUserRoles))
	copy(out, validUserRoles)
	return out
}

// String implements fmt.Stringer.
func (r UserRole) String() string {
	return string(r)
}

// Label is the pt-BR name shown in the users screen.
func (r UserRole) Label() string {
	if label, ok := userRoleLabels[r]; ok {
		return label
	}
	return string(r)
}

// IsValid reports whether the value is a known UserRole.
func (r UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseUserRole converts raw input into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
