package backend

import (
	"context"
	"net/http"

	"github.com/SttarkMax/sistema/pkg/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the backend, which answers with the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) (models.LoggedInUser, error) {
	var user models.LoggedInUser
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Username: username, Password: password}, &user)
	return user, err
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// CurrentUser returns the user behind the session cookies bound to ctx.
func (c *Client) CurrentUser(ctx context.Context) (models.LoggedInUser, error) {
	var user models.LoggedInUser
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}

func (c *Client) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	var info *models.CompanyInfo
	if err := c.do(ctx, http.MethodGet, "/company-info", nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) SaveCompanyInfo(ctx context.Context, info models.CompanyInfo) (models.CompanyInfo, error) {
	out := info
	if err := c.do(ctx, http.MethodPost, "/company-info", info, &out); err != nil {
		return models.CompanyInfo{}, err
	}
	return out, nil
}
