package models

import "github.com/SttarkMax/sistema/pkg/enums"

// User is a console account as managed by administrators. Password is write-only.
type User struct {
	ID       string         `json:"id,omitempty"`
	Username string         `json:"username" validate:"required"`
	FullName *string        `json:"fullName,omitempty"`
	Password string         `json:"password,omitempty"`
	Role     enums.UserRole `json:"role" validate:"required"`
}

// LoggedInUser is the identity of the current session. It never carries a password.
type LoggedInUser struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	FullName *string        `json:"fullName,omitempty"`
	Role     enums.UserRole `json:"role"`
}

// DisplayName prefers the full name and falls back to the username.
func (u LoggedInUser) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// Public strips credentials from a managed user.
func (u User) Public() LoggedInUser {
	return LoggedInUser{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
