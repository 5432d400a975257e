package backend

import (
	"context"

	"github.com/SttarkMax/sistema/pkg/models"
)

const usersPath = "/users"

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	return list[models.User](ctx, c, usersPath)
}

// SaveUser sends the password only when it is set, so updates keep the stored one.
func (c *Client) SaveUser(ctx context.Context, user models.User) (models.User, error) {
	out, err := save(ctx, c, usersPath, user.ID, user)
	out.Password = ""
	return out, err
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.remove(ctx, usersPath, id)
}
