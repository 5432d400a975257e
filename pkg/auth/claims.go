package auth

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenPayload captures the data available when minting the console cookie.
type SessionTokenPayload struct {
	SessionID string
	UserID    string
	Username  string
	Role      enums.UserRole
}

// SessionTokenClaims is the typed JWT carried by the console session cookie.
// The session id is the JWT id and the key of the redis session record.
type SessionTokenClaims struct {
	UserID   string         `json:"user_id"`
	Username string         `json:"username"`
	Role     enums.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the redis session identifier carried as jti.
func (c *SessionTokenClaims) SessionID() string {
	return c.ID
}
