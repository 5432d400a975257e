package gate

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthAPI struct {
	mu sync.Mutex

	user       models.LoggedInUser
	meErr      error
	loginErr   error
	logoutErr  error
	company    *models.CompanyInfo
	companyErr error

	meCalls     int
	logoutCalls int

	meEntered chan struct{}
	meRelease chan struct{}
}

func (s *stubAuthAPI) Login(ctx context.Context, username, password string) (models.LoggedInUser, error) {
	if s.loginErr != nil {
		return models.LoggedInUser{}, s.loginErr
	}
	return s.user, nil
}

func (s *stubAuthAPI) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logoutCalls++
	return s.logoutErr
}

func (s *stubAuthAPI) CurrentUser(ctx context.Context) (models.LoggedInUser, error) {
	if s.meEntered != nil {
		close(s.meEntered)
		<-s.meRelease
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meCalls++
	return s.user, s.meErr
}

func (s *stubAuthAPI) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	if s.companyErr != nil {
		return nil, s.companyErr
	}
	return s.company, nil
}

func newTestGate(t *testing.T, api *stubAuthAPI) (*Gate, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	g, err := New(api, logger.New(logger.Options{ServiceName: "test", Output: &buf, Format: "json"}))
	require.NoError(t, err)
	return g, &buf
}

func salesUser() models.LoggedInUser {
	return models.LoggedInUser{ID: "u1", Username: "ana", Role: enums.UserRoleSales}
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, logger.New(logger.Options{}))
	require.Error(t, err)
	_, err = New(&stubAuthAPI{}, nil)
	require.Error(t, err)
}

func TestBootstrapAuthenticatedWithCompany(t *testing.T) {
	api := &stubAuthAPI{user: salesUser(), company: &models.CompanyInfo{Name: "Gráfica Pixel"}}
	g, _ := newTestGate(t, api)

	snap := g.Bootstrap(context.Background())
	require.True(t, snap.Authenticated())
	assert.Equal(t, "ana", snap.User.Username)
	require.NotNil(t, snap.Company)
	assert.Equal(t, "Gráfica Pixel", snap.Company.Name)
}

func TestBootstrapCompanyFailureKeepsUser(t *testing.T) {
	api := &stubAuthAPI{user: salesUser(), companyErr: errors.New("down")}
	g, buf := newTestGate(t, api)

	snap := g.Bootstrap(context.Background())
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Nil(t, snap.Company)
	assert.Contains(t, buf.String(), "gate.bootstrap.company_unavailable")
}

func TestBootstrapFailureIsAnonymousAndRunsOnce(t *testing.T) {
	api := &stubAuthAPI{meErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "Não autenticado")}
	g, buf := newTestGate(t, api)

	snap := g.Bootstrap(context.Background())
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Nil(t, snap.User)
	assert.Contains(t, buf.String(), `"level":"info"`)

	g.Bootstrap(context.Background())
	assert.Equal(t, 1, api.meCalls)
}

func TestConcurrentBootstrapWaitsForFirstCall(t *testing.T) {
	api := &stubAuthAPI{
		user:      salesUser(),
		company:   &models.CompanyInfo{Name: "Gráfica Pixel"},
		meEntered: make(chan struct{}),
		meRelease: make(chan struct{}),
	}
	g, _ := newTestGate(t, api)

	snaps := make(chan Snapshot, 2)
	go func() { snaps <- g.Bootstrap(context.Background()) }()
	<-api.meEntered
	go func() { snaps <- g.Bootstrap(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	select {
	case snap := <-snaps:
		t.Fatalf("bootstrap returned before the backend answered: %v", snap.State)
	default:
	}
	close(api.meRelease)

	for i := 0; i < 2; i++ {
		snap := <-snaps
		assert.Equal(t, StateAuthenticated, snap.State)
		require.NotNil(t, snap.User)
		assert.Equal(t, "ana", snap.User.Username)
	}
	assert.Equal(t, 1, api.meCalls)
}

func TestLoginRejectedCredentials(t *testing.T) {
	api := &stubAuthAPI{loginErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "Credenciais inválidas")}
	g, _ := newTestGate(t, api)

	ok, err := g.Login(context.Background(), "ana", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, StateAnonymous, g.Snapshot().State)
}

func TestLoginTransportFailureReturnsError(t *testing.T) {
	api := &stubAuthAPI{loginErr: pkgerrors.New(pkgerrors.CodeDependency, "backend unreachable")}
	g, _ := newTestGate(t, api)

	ok, err := g.Login(context.Background(), "ana", "secret")
	require.Error(t, err)
	assert.False(t, ok)
}

func TestLoginEmptyCredentialsNeverCallsBackend(t *testing.T) {
	api := &stubAuthAPI{loginErr: errors.New("must not be called")}
	g, _ := newTestGate(t, api)

	ok, err := g.Login(context.Background(), "  ", "secret")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginSuccessRefreshesCompanyInBackground(t *testing.T) {
	api := &stubAuthAPI{user: salesUser(), company: &models.CompanyInfo{Name: "Gráfica Pixel"}}
	g, _ := newTestGate(t, api)

	done := make(chan *models.CompanyInfo, 1)
	g.OnCompanyRefreshed(func(info *models.CompanyInfo, err error) {
		assert.NoError(t, err)
		done <- info
	})

	ctx, cancel := context.WithCancel(context.Background())
	ok, err := g.Login(ctx, "ana", "secret")
	cancel()
	require.NoError(t, err)
	require.True(t, ok)

	select {
	case info := <-done:
		require.NotNil(t, info)
		assert.Equal(t, "Gráfica Pixel", info.Name)
	case <-time.After(2 * time.Second):
		t.Fatal("company refresh never completed")
	}
	g.Wait()
	assert.Equal(t, "Gráfica Pixel", g.Snapshot().Company.Name)
}

func TestRefreshFailureReportsToCallbackOnly(t *testing.T) {
	api := &stubAuthAPI{user: salesUser(), companyErr: errors.New("timeout")}
	g, _ := newTestGate(t, api)
	g.Restore(salesUser(), &models.CompanyInfo{Name: "Antiga"})

	var got error
	g.RefreshCompanyInfo(context.Background(), func(info *models.CompanyInfo, err error) {
		got = err
	})
	g.Wait()

	require.Error(t, got)
	assert.Equal(t, "Antiga", g.Snapshot().Company.Name)
}

func TestLogoutAlwaysEndsAnonymous(t *testing.T) {
	api := &stubAuthAPI{logoutErr: errors.New("backend down")}
	g, buf := newTestGate(t, api)
	g.Restore(salesUser(), nil)

	g.Logout(context.Background())
	assert.Equal(t, StateAnonymous, g.Snapshot().State)
	assert.Contains(t, buf.String(), "gate.logout.backend_failed")

	g.Logout(context.Background())
	assert.Equal(t, StateAnonymous, g.Snapshot().State)
	assert.Equal(t, 2, api.logoutCalls)
}

func TestSnapshotReturnsCopies(t *testing.T) {
	api := &stubAuthAPI{}
	g, _ := newTestGate(t, api)
	g.Restore(salesUser(), &models.CompanyInfo{Name: "Pixel"})

	snap := g.Snapshot()
	snap.User.Username = "mutated"
	snap.Company.Name = "mutated"

	again := g.Snapshot()
	assert.Equal(t, "ana", again.User.Username)
	assert.Equal(t, "Pixel", again.Company.Name)
}
