package gate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

// State is the authentication state of one console session.
type State int

const (
	StateUnknown State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

type authAPI interface {
	Login(ctx context.Context, username, password string) (models.LoggedInUser, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.LoggedInUser, error)
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
}

// CompanyCallback receives the outcome of a company-info refresh.
type CompanyCallback func(info *models.CompanyInfo, err error)

// Snapshot is a consistent read of the gate.
type Snapshot struct {
	State   State
	User    *models.LoggedInUser
	Company *models.CompanyInfo
}

// Authenticated reports whether the snapshot carries a logged-in user.
func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// Gate owns the logged-in user and company info of one session. It moves from
// Unknown to Authenticated or Anonymous and never back to Unknown.
type Gate struct {
	api  authAPI
	logg *logger.Logger

	mu           sync.Mutex
	state        State
	user         *models.LoggedInUser
	company      *models.CompanyInfo
	bootstrapped bool
	boot         sync.Once
	onCompany    CompanyCallback
	refreshes    sync.WaitGroup
}

// New builds a gate in the Unknown state.
func New(api authAPI, logg *logger.Logger) (*Gate, error) {
	if api == nil {
		return nil, fmt.Errorf("auth api required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Gate{api: api, logg: logg}, nil
}

// OnCompanyRefreshed registers the callback used by refreshes triggered from Login.
func (g *Gate) OnCompanyRefreshed(cb CompanyCallback) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onCompany = cb
}

// Restore rehydrates the gate from a stored session without calling the backend.
func (g *Gate) Restore(user models.LoggedInUser, company *models.CompanyInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = &user
	g.company = cloneCompany(company)
	g.state = StateAuthenticated
	g.bootstrapped = true
}

// Snapshot returns copies of the current user and company.
func (g *Gate) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := Snapshot{State: g.state, Company: cloneCompany(g.company)}
	if g.user != nil {
		user := *g.user
		out.User = &user
	}
	return out
}

// Bootstrap resolves the Unknown state once by asking the backend who is logged in.
// Concurrent callers wait for the first call and share its result. Company info
// is best effort: its failure leaves the session authenticated.
func (g *Gate) Bootstrap(ctx context.Context) Snapshot {
	g.boot.Do(func() { g.bootstrap(ctx) })
	return g.Snapshot()
}

func (g *Gate) bootstrap(ctx context.Context) {
	g.mu.Lock()
	resolved := g.bootstrapped
	g.mu.Unlock()
	if resolved {
		return
	}

	user, err := g.api.CurrentUser(ctx)
	if err != nil {
		g.logg.Info(g.logg.WithField(ctx, "reason", err.Error()), "gate.bootstrap.anonymous")
		g.setAnonymous()
		return
	}

	company, err := g.api.GetCompanyInfo(ctx)
	if err != nil {
		g.logg.Warn(g.logg.WithField(ctx, "reason", err.Error()), "gate.bootstrap.company_unavailable")
		company = nil
	}

	g.mu.Lock()
	g.user = &user
	g.company = cloneCompany(company)
	g.state = StateAuthenticated
	g.bootstrapped = true
	g.mu.Unlock()

	g.logg.Debug(g.logg.WithSession(ctx, "", user.Username), "gate.bootstrap.authenticated")
}

// Login returns false with a nil error when the backend rejects the credentials
// and false with an error when the backend could not be asked. On success company
// info refreshes in the background.
func (g *Gate) Login(ctx context.Context, username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}

	user, err := g.api.Login(ctx, username, password)
	if err != nil {
		if isRejection(err) {
			g.logg.Info(g.logg.WithSession(ctx, "", username), "gate.login.rejected")
			g.mu.Lock()
			if g.state == StateUnknown {
				g.state = StateAnonymous
			}
			g.bootstrapped = true
			g.mu.Unlock()
			return false, nil
		}
		return false, err
	}

	g.mu.Lock()
	g.user = &user
	g.company = nil
	g.state = StateAuthenticated
	g.bootstrapped = true
	cb := g.onCompany
	g.mu.Unlock()

	g.RefreshCompanyInfo(ctx, cb)
	return true, nil
}

// Logout always leaves the gate Anonymous; a backend failure is only logged.
func (g *Gate) Logout(ctx context.Context) {
	defer g.setAnonymous()

	if err := g.api.Logout(ctx); err != nil {
		g.logg.Warn(g.logg.WithField(ctx, "reason", err.Error()), "gate.logout.backend_failed")
	}
}

// RefreshCompanyInfo reloads company info detached from ctx's cancellation.
// Failures are logged and handed to onDone; the stored company stays as it was.
func (g *Gate) RefreshCompanyInfo(ctx context.Context, onDone CompanyCallback) {
	detached := context.WithoutCancel(ctx)
	g.refreshes.Add(1)
	go func() {
		defer g.refreshes.Done()

		info, err := g.api.GetCompanyInfo(detached)
		if err != nil {
			g.logg.Warn(g.logg.WithField(detached, "reason", err.Error()), "gate.company_refresh.failed")
		} else {
			g.mu.Lock()
			if g.state == StateAuthenticated {
				g.company = cloneCompany(info)
			}
			g.mu.Unlock()
		}
		if onDone != nil {
			onDone(cloneCompany(info), err)
		}
	}()
}

// Wait blocks until background refreshes have finished.
func (g *Gate) Wait() {
	g.refreshes.Wait()
}

func (g *Gate) setAnonymous() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = nil
	g.company = nil
	g.state = StateAnonymous
	g.bootstrapped = true
}

func isRejection(err error) bool {
	code := pkgerrors.CodeOf(err)
	return code == pkgerrors.CodeUnauthorized || code == pkgerrors.CodeValidation
}

func cloneCompany(info *models.CompanyInfo) *models.CompanyInfo {
	if info == nil {
		return nil
	}
	snapshot := info.Snapshot()
	return &snapshot
}
