package navigation

import (
	"testing"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userWith(role enums.UserRole) *models.LoggedInUser {
	return &models.LoggedInUser{ID: "u", Username: string(role), Role: role}
}

func TestResolveRoleGating(t *testing.T) {
	cases := []struct {
		name     string
		path     string
		user     *models.LoggedInUser
		screen   Screen
		redirect string
	}{
		{"viewer to users goes home", "/users", userWith(enums.UserRoleViewer), "", HomePath},
		{"anonymous to home goes to login", "/", nil, "", LoginPath},
		{"anonymous sees login", "/login", nil, ScreenLogin, ""},
		{"authenticated login goes home", "/login", userWith(enums.UserRoleSales), "", HomePath},
		{"sales opens customers", "/customers", userWith(enums.UserRoleSales), ScreenCustomers, ""},
		{"sales blocked from cashflow", "/cashflow", userWith(enums.UserRoleSales), "", HomePath},
		{"viewer sees all quotes", "/quotes/all", userWith(enums.UserRoleViewer), ScreenQuotes, ""},
		{"viewer blocked from new quote", "/quotes/new", userWith(enums.UserRoleViewer), "", HomePath},
		{"viewer opens dashboard", "/", userWith(enums.UserRoleViewer), ScreenDashboard, ""},
		{"unknown path authenticated", "/nope", userWith(enums.UserRoleAdmin), "", HomePath},
		{"unknown path anonymous", "/nope", nil, "", LoginPath},
		{"unknown role denied gated screen", "/products", userWith(enums.UserRole("guest")), "", HomePath},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.path, tc.user)
			assert.Equal(t, tc.screen, got.Screen)
			assert.Equal(t, tc.redirect, got.Redirect)
		})
	}
}

func TestAdminReachesEveryRoute(t *testing.T) {
	admin := userWith(enums.UserRoleAdmin)
	for _, route := range Routes() {
		if route.Public {
			continue
		}
		path := route.Pattern
		if route.Screen == ScreenQuoteEdit {
			path = "/quotes/edit/q-1"
		}
		got := Resolve(path, admin)
		assert.True(t, got.Allowed(), "admin denied %s", path)
		assert.Equal(t, route.Screen, got.Screen)
	}
}

func TestResolveCapturesQuoteID(t *testing.T) {
	got := Resolve("#/quotes/edit/abc-123", userWith(enums.UserRoleSales))
	require.True(t, got.Allowed())
	assert.Equal(t, ScreenQuoteEdit, got.Screen)
	assert.Equal(t, "abc-123", got.Params["quoteId"])

	missing := Resolve("/quotes/edit", userWith(enums.UserRoleSales))
	assert.Equal(t, HomePath, missing.Redirect)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                 "/",
		"#/users":          "/users",
		"/#/users?tab=2":   "/users",
		"quotes/all/":      "/quotes/all",
		"//orders":         "/orders",
		"#!/settings":      "/settings",
		"http://x/#/login": "/login",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "normalize %q", in)
	}
}

func TestAuthorize(t *testing.T) {
	assert.Equal(t, LoginPath, Authorize(ScreenProducts, nil))
	assert.Equal(t, HomePath, Authorize(ScreenUsers, userWith(enums.UserRoleSales)))
	assert.Equal(t, "", Authorize(ScreenUsers, userWith(enums.UserRoleAdmin)))
	assert.Equal(t, "", Authorize(ScreenLogin, nil))
	assert.Equal(t, HomePath, Authorize(Screen("missing"), userWith(enums.UserRoleAdmin)))
}

func TestMenuFiltersByRole(t *testing.T) {
	names := func(items []MenuItem) []string {
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, item.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Painel"}, names(Menu(enums.UserRoleViewer)))
	assert.Equal(t, []string{"Painel", "Clientes", "Produtos", "Categorias", "Orçamentos", "Fornecedores"}, names(Menu(enums.UserRoleSales)))
	assert.Len(t, Menu(enums.UserRoleAdmin), 10)
	assert.Empty(t, Menu(enums.UserRole("")))
}
