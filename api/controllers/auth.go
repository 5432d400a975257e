package controllers

import (
	"context"
	"net/http"

	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

type sessionAuthenticator interface {
	Login(ctx context.Context, w http.ResponseWriter, console *middleware.Console, username, password string) (bool, error)
	Logout(ctx context.Context, w http.ResponseWriter, console *middleware.Console)
	SaveCompany(ctx context.Context, console *middleware.Console, info *models.CompanyInfo)
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=128"`
	Password string `json:"password" validate:"required,max=256"`
}

// SessionView is what the shell needs to render after bootstrap or login.
type SessionView struct {
	Authenticated bool                 `json:"authenticated"`
	User          *models.LoggedInUser `json:"user,omitempty"`
	Company       *models.CompanyInfo  `json:"company,omitempty"`
}

func sessionView(console *middleware.Console) SessionView {
	if console == nil || console.Gate == nil {
		return SessionView{}
	}
	snap := console.Gate.Snapshot()
	if !snap.Authenticated() {
		return SessionView{}
	}
	view := SessionView{Authenticated: true, User: snap.User, Company: snap.Company}
	if view.Company == nil && console.Record != nil {
		view.Company = console.Record.Company
	}
	return view
}

// AuthLogin authenticates against the backend and opens a console session.
func AuthLogin(sessions sessionAuthenticator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var body LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		console := middleware.ConsoleFromContext(r.Context())
		ok, err := sessions.Login(r.Context(), w, console, validators.SanitizeString(body.Username, 128), body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Usuário ou senha inválidos."))
			return
		}

		responses.WriteSuccess(w, sessionView(console))
	}
}

// AuthLogout always succeeds; the session ends even when the backend is unreachable.
func AuthLogout(sessions sessionAuthenticator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessions == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}
		sessions.Logout(r.Context(), w, middleware.ConsoleFromContext(r.Context()))
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthMe reports the session state; anonymous visitors get authenticated=false.
func AuthMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, sessionView(middleware.ConsoleFromContext(r.Context())))
	}
}
