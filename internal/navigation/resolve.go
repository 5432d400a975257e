package navigation

import (
	"strings"

	"github.com/SttarkMax/sistema/pkg/models"
)

// Decision is the outcome of resolving a path. Exactly one of Screen or Redirect is set.
type Decision struct {
	Path     string            `json:"path"`
	Screen   Screen            `json:"screen,omitempty"`
	Params   map[string]string `json:"params,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// Allowed reports whether the visitor may render the requested screen.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Resolve decides what a visitor sees at rawPath. user is nil for anonymous
// visitors. Unmatched paths never render; they redirect home or to login.
func Resolve(rawPath string, user *models.LoggedInUser) Decision {
	path := Normalize(rawPath)

	route, params, found := match(path)
	if user == nil {
		if found && route.Public {
			return Decision{Path: path, Screen: route.Screen}
		}
		return Decision{Path: path, Redirect: LoginPath}
	}

	if !found || route.Public {
		return Decision{Path: path, Redirect: HomePath}
	}
	if !route.Allows(user.Role) {
		return Decision{Path: path, Redirect: HomePath}
	}
	return Decision{Path: path, Screen: route.Screen, Params: params}
}

// Authorize applies the route rules to a screen directly. It returns the redirect
// target, or "" when user may open screen.
func Authorize(screen Screen, user *models.LoggedInUser) string {
	route, ok := RouteFor(screen)
	if user == nil {
		if ok && route.Public {
			return ""
		}
		return LoginPath
	}
	if !ok || !route.Allows(user.Role) {
		return HomePath
	}
	return ""
}

// Normalize turns browser locations such as "#/users?tab=1" or "/quotes/all/"
// into a clean absolute path.
func Normalize(raw string) string {
	path := strings.TrimSpace(raw)
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimPrefix(path, "!")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}

func match(path string) (Route, map[string]string, bool) {
	segments := split(path)
	for _, route := range routeTable {
		if params, ok := matchPattern(split(route.Pattern), segments); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func matchPattern(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	var params map[string]string
	for i, part := range pattern {
		if strings.HasPrefix(part, ":") {
			if segments[i] == "" {
				return nil, false
			}
			if params == nil {
				params = map[string]string{}
			}
			params[part[1:]] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func split(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
