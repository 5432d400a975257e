package users

import (
	"context"
	"fmt"
	"sort"
	"strings"

	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
)

type usersAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	SaveUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Service manages console accounts. Passwords are only ever forwarded to the backend.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	Save(ctx context.Context, actor models.LoggedInUser, input SaveUserInput) (*UserDTO, error)
	Delete(ctx context.Context, actor models.LoggedInUser, id string) error
}

type service struct {
	api usersAPI
}

func NewService(api usersAPI) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("users api required")
	}
	return &service{api: api}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Username) < strings.ToLower(users[j].Username)
	})
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, FromModel(u))
	}
	return out, nil
}

// Save requires a password for new accounts, keeps usernames unique ignoring
// case and stops an administrator from demoting their own account.
func (s *service) Save(ctx context.Context, actor models.LoggedInUser, input SaveUserInput) (*UserDTO, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" {
		return nil, invalidInput("username", "username is required")
	}
	if !input.Role.IsValid() {
		return nil, invalidInput("role", "role must be admin, sales or viewer")
	}
	if input.ID == "" && input.Password == "" {
		return nil, invalidInput("password", "password is required for new users")
	}
	if input.ID != "" && input.ID == actor.ID && input.Role != actor.Role {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Você não pode alterar o seu próprio nível de acesso.")
	}

	existing, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.ID != input.ID && strings.EqualFold(u.Username, input.Username) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Nome de usuário já está em uso.").
				WithDetails(map[string]string{"field": "username"})
		}
	}

	saved, err := s.api.SaveUser(ctx, input.toModel())
	if err != nil {
		return nil, err
	}
	dto := FromModel(saved)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, actor models.LoggedInUser, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "user id is required")
	}
	if id == actor.ID {
		return pkgerrors.New(pkgerrors.CodeConflict, "Você não pode excluir o seu próprio usuário.")
	}
	return s.api.DeleteUser(ctx, id)
}

func invalidInput(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]string{"field": field})
}
