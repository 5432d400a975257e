package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SttarkMax/sistema/internal/gate"
	"github.com/SttarkMax/sistema/internal/navigation"
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redirectCounter struct {
	hits map[string]int
}

func (r *redirectCounter) IncRedirect(screen, redirect string) {
	if r.hits == nil {
		r.hits = map[string]int{}
	}
	r.hits[screen+"->"+redirect]++
}

func newRestoredGate(t *testing.T, user models.LoggedInUser) *gate.Gate {
	t.Helper()
	g, err := gate.New(&stubAuthAPI{}, testLogger())
	require.NoError(t, err)
	g.Restore(user, nil)
	return g
}

func withUser(t *testing.T, role enums.UserRole) func(http.Handler) http.Handler {
	t.Helper()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			console := &Console{}
			if role != "" {
				console.Gate = newRestoredGate(t, models.LoggedInUser{ID: "u-1", Username: "ana", Role: role})
			}
			next.ServeHTTP(w, r.WithContext(WithConsole(r.Context(), console)))
		})
	}
}

func serveScreen(t *testing.T, screen navigation.Screen, role enums.UserRole, counter *redirectCounter) *httptest.ResponseRecorder {
	t.Helper()
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	handler := withUser(t, role)(RequireScreen(screen, counter, nil)(ok))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/x", nil))
	return rec
}

func decodeRedirect(t *testing.T, rec *httptest.ResponseRecorder) (string, RedirectDetails) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string          `json:"code"`
			Details RedirectDetails `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code, body.Error.Details
}

func TestRequireScreenAnonymousRedirectsToLogin(t *testing.T) {
	counter := &redirectCounter{}
	rec := serveScreen(t, navigation.ScreenQuotes, "", counter)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	code, details := decodeRedirect(t, rec)
	assert.Equal(t, "UNAUTHORIZED", code)
	assert.Equal(t, navigation.LoginPath, details.Redirect)
	assert.Equal(t, 1, counter.hits["quotes->/login"])
}

func TestRequireScreenWrongRoleRedirectsHome(t *testing.T) {
	counter := &redirectCounter{}
	rec := serveScreen(t, navigation.ScreenUsers, enums.UserRoleSales, counter)

	require.Equal(t, http.StatusForbidden, rec.Code)
	_, details := decodeRedirect(t, rec)
	assert.Equal(t, navigation.HomePath, details.Redirect)
	assert.Equal(t, navigation.ScreenUsers, details.Screen)
	assert.Equal(t, 1, counter.hits["users->/"])
}

func TestRequireScreenAllowsPermittedRole(t *testing.T) {
	rec := serveScreen(t, navigation.ScreenQuotes, enums.UserRoleViewer, &redirectCounter{})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serveScreen(t, navigation.ScreenCashFlow, enums.UserRoleAdmin, &redirectCounter{})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireUser(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	withUser(t, "")(RequireUser(nil)(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/menu", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body types.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Faça login para continuar.", body.Error.Message)

	rec = httptest.NewRecorder()
	withUser(t, enums.UserRoleViewer)(RequireUser(nil)(ok)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/menu", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
