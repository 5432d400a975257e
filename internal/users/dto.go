package users

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
)

// UserDTO is the transport shape that omits credentials.
type UserDTO struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	FullName  *string        `json:"fullName,omitempty"`
	Role      enums.UserRole `json:"role"`
	RoleLabel string         `json:"roleLabel"`
}

// SaveUserInput is the body of a user create or update. An empty password on
// update keeps the current one.
type SaveUserInput struct {
	ID       string         `json:"id,omitempty"`
	Username string         `json:"username" validate:"required,max=64"`
	FullName *string        `json:"fullName,omitempty"`
	Password string         `json:"password,omitempty" validate:"omitempty,min=4,max=256"`
	Role     enums.UserRole `json:"role" validate:"required"`
}

func FromModel(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		RoleLabel: u.Role.Label(),
	}
}

func (in SaveUserInput) toModel() models.User {
	return models.User{
		ID:       in.ID,
		Username: in.Username,
		FullName: in.FullName,
		Password: in.Password,
		Role:     in.Role,
	}
}
