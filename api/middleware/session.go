package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/api/validators"
	"github.com/SttarkMax/sistema/internal/backend"
	"github.com/SttarkMax/sistema/internal/gate"
	pkgAuth "github.com/SttarkMax/sistema/pkg/auth"
	"github.com/SttarkMax/sistema/pkg/auth/session"
	"github.com/SttarkMax/sistema/pkg/config"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

const companyPersistTimeout = 5 * time.Second

type authAPI interface {
	Login(ctx context.Context, username, password string) (models.LoggedInUser, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.LoggedInUser, error)
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
}

// Sessions ties the console cookie, the redis session record and the per-request gate together.
type Sessions struct {
	jwt    config.JWTConfig
	cookie config.SessionConfig
	store  session.Store
	api    authAPI
	logg   *logger.Logger
	now    func() time.Time
}

func NewSessions(jwt config.JWTConfig, cookie config.SessionConfig, store session.Store, api authAPI, logg *logger.Logger) (*Sessions, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if api == nil {
		return nil, fmt.Errorf("auth api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cookie.CookieName == "" {
		return nil, fmt.Errorf("session cookie name required")
	}
	return &Sessions{
		jwt:    jwt,
		cookie: cookie,
		store:  store,
		api:    api,
		logg:   logg,
		now:    time.Now,
	}, nil
}

// Middleware attaches a Console to every request. Requests without a usable
// session continue anonymously; screen gating decides what they may reach.
func (s *Sessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		console, ctx, err := s.resume(ctx, w, r)
		if err != nil {
			responses.WriteError(ctx, s.logg, w, err)
			return
		}

		ctx = backend.WithCredentials(ctx, console.Credentials)
		ctx = WithConsole(ctx, console)

		next.ServeHTTP(w, r.WithContext(ctx))

		s.persistCookies(ctx, console)
	})
}

func (s *Sessions) resume(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Console, context.Context, error) {
	g, err := gate.New(s.api, s.logg)
	if err != nil {
		return nil, ctx, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build session gate")
	}
	console := &Console{Gate: g, Credentials: backend.NewCredentials(nil)}

	token, err := validators.SessionToken(r, s.cookie.CookieName)
	if err != nil {
		return console, ctx, nil
	}

	claims, err := pkgAuth.ParseSessionToken(s.jwt, token)
	if err != nil {
		s.logg.Info(s.logg.WithField(ctx, "reason", err.Error()), "session.token_rejected")
		s.clearCookie(w)
		return console, ctx, nil
	}

	rec, err := s.store.Load(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			s.clearCookie(w)
			return console, ctx, nil
		}
		return nil, ctx, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable")
	}

	ctx = s.logg.WithSession(ctx, rec.SessionID, rec.User.Username)
	console.Credentials = backend.NewCredentials(rec.BackendCookies)

	now := s.now()
	if !rec.NeedsRevalidation(now, s.cookie.Revalidate) {
		g.Restore(rec.User, rec.Company)
		console.Record = rec
		return console, s.logg.WithActorRole(ctx, string(rec.User.Role)), nil
	}

	snap := g.Bootstrap(backend.WithCredentials(ctx, console.Credentials))
	if !snap.Authenticated() {
		if err := s.store.Revoke(ctx, rec.SessionID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "session.revoke_failed")
		}
		s.clearCookie(w)
		console.Credentials = backend.NewCredentials(nil)
		return console, ctx, nil
	}

	rec.User = *snap.User
	if snap.Company != nil {
		rec.Company = snap.Company
	}
	rec.VerifiedAt = now
	if err := s.store.Save(ctx, *rec); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "session.save_failed")
	}
	console.Record = rec
	return console, s.logg.WithActorRole(ctx, string(rec.User.Role)), nil
}

// Login authenticates through the gate and, on success, stores a new session
// record and sets the console cookie. Rejected credentials return false with a
// nil error.
func (s *Sessions) Login(ctx context.Context, w http.ResponseWriter, console *Console, username, password string) (bool, error) {
	if console == nil {
		return false, pkgerrors.New(pkgerrors.CodeInternal, "console session missing")
	}

	sessionID := session.NewSessionID()
	ready := make(chan struct{})
	defer close(ready)
	console.Gate.OnCompanyRefreshed(s.companyPersister(sessionID, ready))

	ok, err := console.Gate.Login(ctx, username, password)
	if err != nil || !ok {
		return false, err
	}

	snap := console.Gate.Snapshot()
	now := s.now()
	rec, err := s.store.Create(ctx, session.Record{
		SessionID:      sessionID,
		User:           *snap.User,
		Company:        snap.Company,
		BackendCookies: console.Credentials.Snapshot(),
		CreatedAt:      now,
		VerifiedAt:     now,
	})
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "session store unavailable")
	}

	token, err := pkgAuth.MintSessionToken(s.jwt, now, pkgAuth.SessionTokenPayload{
		SessionID: rec.SessionID,
		UserID:    rec.User.ID,
		Username:  rec.User.Username,
		Role:      rec.User.Role,
	})
	if err != nil {
		_ = s.store.Revoke(ctx, rec.SessionID)
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token")
	}

	s.setCookie(w, token)
	console.Record = &rec
	console.Credentials.Changed()

	s.logg.Info(s.logg.WithSession(ctx, rec.SessionID, rec.User.Username), "session.login")
	return true, nil
}

// Logout ends the backend session, deletes the record and clears the cookie.
func (s *Sessions) Logout(ctx context.Context, w http.ResponseWriter, console *Console) {
	if console == nil {
		s.clearCookie(w)
		return
	}

	console.Gate.Logout(ctx)
	if console.Record != nil {
		if err := s.store.Revoke(ctx, console.Record.SessionID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "session.revoke_failed")
		}
		s.logg.Info(ctx, "session.logout")
	}
	console.Record = nil
	console.Credentials.Clear()
	console.Credentials.Changed()
	s.clearCookie(w)
}

// SaveCompany stores company info fetched during the request in the session record.
func (s *Sessions) SaveCompany(ctx context.Context, console *Console, info *models.CompanyInfo) {
	if console == nil || console.Record == nil || info == nil {
		return
	}
	snapshot := info.Snapshot()
	console.Record.Company = &snapshot
	if err := s.store.Save(ctx, *console.Record); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "session.save_failed")
	}
}

func (s *Sessions) companyPersister(sessionID string, ready <-chan struct{}) gate.CompanyCallback {
	return func(info *models.CompanyInfo, err error) {
		if err != nil || info == nil {
			return
		}
		<-ready

		ctx, cancel := context.WithTimeout(context.Background(), companyPersistTimeout)
		defer cancel()

		rec, loadErr := s.store.Load(ctx, sessionID)
		if loadErr != nil {
			if !errors.Is(loadErr, session.ErrSessionNotFound) {
				s.logg.Warn(s.logg.WithField(ctx, "reason", loadErr.Error()), "session.company_persist_failed")
			}
			return
		}
		rec.Company = info
		if saveErr := s.store.Save(ctx, *rec); saveErr != nil {
			s.logg.Warn(s.logg.WithField(ctx, "reason", saveErr.Error()), "session.company_persist_failed")
		}
	}
}

func (s *Sessions) persistCookies(ctx context.Context, console *Console) {
	if console.Record == nil || !console.Credentials.Changed() {
		return
	}
	console.Record.BackendCookies = console.Credentials.Snapshot()
	if err := s.store.Save(context.WithoutCancel(ctx), *console.Record); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "reason", err.Error()), "session.save_failed")
	}
}

func (s *Sessions) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.jwt.Expiration().Seconds()),
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Sessions) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
