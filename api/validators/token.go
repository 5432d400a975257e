package validators

import (
	"errors"
	"net/http"
	"strings"
)

var ErrMissingToken = errors.New("missing session token")

// SessionToken extracts the console session token from the session cookie,
// falling back to a bearer Authorization header for non-browser clients.
func SessionToken(r *http.Request, cookieName string) (string, error) {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token, nil
		}
	}
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		if token := strings.TrimSpace(raw[7:]); token != "" {
			return token, nil
		}
	}
	return "", ErrMissingToken
}
