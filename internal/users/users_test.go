package users

import (
	"context"
	"testing"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUsersAPI struct {
	users   []models.User
	saved   []models.User
	deleted []string
}

func (s *stubUsersAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	return append([]models.User(nil), s.users...), nil
}

func (s *stubUsersAPI) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	s.saved = append(s.saved, user)
	if user.ID == "" {
		user.ID = "u-new"
	}
	user.Password = ""
	return user, nil
}

func (s *stubUsersAPI) DeleteUser(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

var admin = models.LoggedInUser{ID: "u-admin", Username: "root", Role: enums.UserRoleAdmin}

func newTestService(t *testing.T, api *stubUsersAPI) Service {
	t.Helper()
	svc, err := NewService(api)
	require.NoError(t, err)
	return svc
}

func TestListSortsAndHidesPasswords(t *testing.T) {
	api := &stubUsersAPI{users: []models.User{
		{ID: "2", Username: "zeca", Password: "leak", Role: enums.UserRoleSales},
		{ID: "1", Username: "Ana", Role: enums.UserRoleViewer},
	}}
	list, err := newTestService(t, api).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Username)
	assert.Equal(t, "Visualizador", list[0].RoleLabel)
	assert.Equal(t, "Vendedor", list[1].RoleLabel)
}

func TestSaveRequiresPasswordForNewUsers(t *testing.T) {
	api := &stubUsersAPI{}
	_, err := newTestService(t, api).Save(context.Background(), admin, SaveUserInput{Username: "bia", Role: enums.UserRoleSales})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Empty(t, api.saved)
}

func TestSaveRejectsDuplicateUsername(t *testing.T) {
	api := &stubUsersAPI{users: []models.User{{ID: "1", Username: "Bia", Role: enums.UserRoleSales}}}
	_, err := newTestService(t, api).Save(context.Background(), admin, SaveUserInput{Username: "bia", Password: "1234", Role: enums.UserRoleSales})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))
}

func TestSaveUpdateKeepsPasswordOptional(t *testing.T) {
	api := &stubUsersAPI{users: []models.User{{ID: "1", Username: "bia", Role: enums.UserRoleSales}}}
	saved, err := newTestService(t, api).Save(context.Background(), admin, SaveUserInput{ID: "1", Username: " bia ", Role: enums.UserRoleViewer})
	require.NoError(t, err)
	assert.Equal(t, "bia", saved.Username)
	assert.Equal(t, enums.UserRoleViewer, saved.Role)
	require.Len(t, api.saved, 1)
	assert.Equal(t, "", api.saved[0].Password)
}

func TestAdminCannotDemoteOrDeleteSelf(t *testing.T) {
	api := &stubUsersAPI{users: []models.User{{ID: admin.ID, Username: admin.Username, Role: admin.Role}}}
	svc := newTestService(t, api)

	_, err := svc.Save(context.Background(), admin, SaveUserInput{ID: admin.ID, Username: "root", Role: enums.UserRoleSales})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))

	err = svc.Delete(context.Background(), admin, admin.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))

	require.NoError(t, svc.Delete(context.Background(), admin, "u-other"))
	assert.Equal(t, []string{"u-other"}, api.deleted)
}
