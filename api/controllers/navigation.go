package controllers

import (
	"net/http"

	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/internal/navigation"
)

type redirectRecorder interface {
	IncRedirect(screen, redirect string)
}

// Navigate resolves a shell location (?path=#/users) into the screen to render
// or the redirect to follow.
func Navigate(recorder redirectRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		decision := navigation.Resolve(r.URL.Query().Get("path"), middleware.UserFromContext(r.Context()))
		if !decision.Allowed() && recorder != nil {
			recorder.IncRedirect("navigate", decision.Redirect)
		}
		responses.WriteSuccess(w, decision)
	}
}

// Menu lists the sidebar entries of the logged-in user's role.
func Menu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		if user == nil {
			responses.WriteSuccess(w, []navigation.MenuItem{})
			return
		}
		responses.WriteSuccess(w, navigation.Menu(user.Role))
	}
}
