package middleware

import (
	"net/http"

	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/internal/navigation"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
)

type redirectRecorder interface {
	IncRedirect(screen, redirect string)
}

// RedirectDetails tells the shell where to send a visitor who may not open a screen.
type RedirectDetails struct {
	Screen   navigation.Screen `json:"screen"`
	Redirect string            `json:"redirect"`
}

// RequireScreen gates a handler behind the same rules as the screen it serves.
// Anonymous visitors get 401 with a redirect to the login screen; logged-in
// users without the role get 403 with a redirect home.
func RequireScreen(screen navigation.Screen, recorder redirectRecorder, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			redirect := navigation.Authorize(screen, UserFromContext(r.Context()))
			if redirect == "" {
				next.ServeHTTP(w, r)
				return
			}

			if recorder != nil {
				recorder.IncRedirect(string(screen), redirect)
			}

			details := RedirectDetails{Screen: screen, Redirect: redirect}
			var err *pkgerrors.Error
			if redirect == navigation.LoginPath {
				err = pkgerrors.New(pkgerrors.CodeUnauthorized, "Faça login para continuar.")
			} else {
				err = pkgerrors.New(pkgerrors.CodeForbidden, "Você não tem permissão para acessar esta página.")
			}
			responses.WriteError(r.Context(), logg, w, err.WithDetails(details))
		})
	}
}

// RequireUser rejects anonymous requests to endpoints shared by every screen.
func RequireUser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserFromContext(r.Context()) == nil {
				err := pkgerrors.New(pkgerrors.CodeUnauthorized, "Faça login para continuar.").
					WithDetails(RedirectDetails{Redirect: navigation.LoginPath})
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
