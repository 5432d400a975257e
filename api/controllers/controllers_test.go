package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/internal/customers"
	"github.com/SttarkMax/sistema/internal/gate"
	"github.com/SttarkMax/sistema/internal/payables"
	"github.com/SttarkMax/sistema/internal/quotes"
	"github.com/SttarkMax/sistema/pkg/auth/session"
	"github.com/SttarkMax/sistema/pkg/config"
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
)

type stubAuthAPI struct{}

func (stubAuthAPI) Login(ctx context.Context, username, password string) (models.LoggedInUser, error) {
	return models.LoggedInUser{}, nil
}
func (stubAuthAPI) Logout(ctx context.Context) error { return nil }
func (stubAuthAPI) CurrentUser(ctx context.Context) (models.LoggedInUser, error) {
	return models.LoggedInUser{}, nil
}
func (stubAuthAPI) GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: &bytes.Buffer{}, Format: "json"})
}

func consoleFor(t *testing.T, user *models.LoggedInUser, record *session.Record) *middleware.Console {
	t.Helper()
	g, err := gate.New(stubAuthAPI{}, testLogger())
	if err != nil {
		t.Fatalf("gate: %v", err)
	}
	if user != nil {
		g.Restore(*user, nil)
	}
	return &middleware.Console{Gate: g, Record: record}
}

func withConsole(console *middleware.Console, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithConsole(r.Context(), console)))
	})
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

type stubSessions struct {
	ok      bool
	err     error
	logouts int
}

func (s *stubSessions) Login(ctx context.Context, w http.ResponseWriter, console *middleware.Console, username, password string) (bool, error) {
	if s.ok {
		console.Gate.Restore(models.LoggedInUser{ID: "u-1", Username: username, Role: enums.UserRoleSales}, nil)
	}
	return s.ok, s.err
}

func (s *stubSessions) Logout(ctx context.Context, w http.ResponseWriter, console *middleware.Console) {
	s.logouts++
}

func (s *stubSessions) SaveCompany(ctx context.Context, console *middleware.Console, info *models.CompanyInfo) {}

func TestAuthLoginRejectedCredentials(t *testing.T) {
	handler := withConsole(consoleFor(t, nil, nil), AuthLogin(&stubSessions{}, nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/console/auth/login", bytes.NewBufferString(`{"username":"ana","password":"x"}`)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Error == nil || env.Error.Message != "Usuário ou senha inválidos." {
		t.Fatalf("unexpected error payload %+v", env.Error)
	}
}

func TestAuthLoginSuccessReturnsSessionView(t *testing.T) {
	handler := withConsole(consoleFor(t, nil, nil), AuthLogin(&stubSessions{ok: true}, nil))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/console/auth/login", bytes.NewBufferString(`{"username":" ana ","password":"x"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var view SessionView
	if err := json.Unmarshal(decode(t, rec).Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if !view.Authenticated || view.User == nil || view.User.Username != "ana" {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestAuthMeFallsBackToRecordCompany(t *testing.T) {
	user := &models.LoggedInUser{ID: "u-1", Username: "ana", Role: enums.UserRoleAdmin}
	record := &session.Record{SessionID: "s-1", User: *user, Company: &models.CompanyInfo{Name: "Gráfica"}}
	rec := httptest.NewRecorder()
	withConsole(consoleFor(t, user, record), AuthMe()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/auth/me", nil))

	var view SessionView
	if err := json.Unmarshal(decode(t, rec).Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Company == nil || view.Company.Name != "Gráfica" {
		t.Fatalf("expected record company, got %+v", view.Company)
	}
}

func TestAuthMeAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	withConsole(consoleFor(t, nil, nil), AuthMe()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/auth/me", nil))

	var view SessionView
	if err := json.Unmarshal(decode(t, rec).Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Authenticated || view.User != nil {
		t.Fatalf("expected anonymous view, got %+v", view)
	}
}

type countingRecorder struct{ redirects []string }

func (c *countingRecorder) IncRedirect(screen, redirect string) {
	c.redirects = append(c.redirects, screen+"->"+redirect)
}

func TestNavigateRecordsDeniedScreens(t *testing.T) {
	recorder := &countingRecorder{}
	user := &models.LoggedInUser{ID: "u-2", Username: "vera", Role: enums.UserRoleViewer}
	rec := httptest.NewRecorder()
	withConsole(consoleFor(t, user, nil), Navigate(recorder)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/navigate?path=%23%2Fusers", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(recorder.redirects) != 1 || recorder.redirects[0] != "navigate->/" {
		t.Fatalf("unexpected redirects %v", recorder.redirects)
	}
}

type stubQuotes struct {
	author quotes.Author
	input  quotes.Input
}

func (s *stubQuotes) List(ctx context.Context, filter quotes.Filter) ([]models.Quote, error) {
	return nil, nil
}
func (s *stubQuotes) Get(ctx context.Context, id string) (*models.Quote, error) {
	return &models.Quote{ID: id}, nil
}
func (s *stubQuotes) Create(ctx context.Context, author quotes.Author, input quotes.Input) (*models.Quote, error) {
	s.author, s.input = author, input
	return &models.Quote{ID: "q-1", QuoteNumber: "ORC-000001"}, nil
}
func (s *stubQuotes) Update(ctx context.Context, id string, input quotes.Input) (*models.Quote, error) {
	return &models.Quote{ID: id}, nil
}
func (s *stubQuotes) Transition(ctx context.Context, id string, to enums.QuoteStatus) (*models.Quote, error) {
	return &models.Quote{ID: id, Status: to}, nil
}

func TestQuotesCreateUsesSessionAuthor(t *testing.T) {
	svc := &stubQuotes{}
	user := &models.LoggedInUser{ID: "u-1", Username: "ana", Role: enums.UserRoleSales}
	record := &session.Record{SessionID: "s-1", User: *user, Company: &models.CompanyInfo{Name: "Gráfica"}}
	body := `{"clientName":"  Padaria  ","lines":[{"productId":"p-1","quantity":"2"}],"discountType":"none","discountValue":"0"}`

	rec := httptest.NewRecorder()
	withConsole(consoleFor(t, user, record), QuotesCreate(svc, testLogger())).
		ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/console/api/quotes", bytes.NewBufferString(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.author.User.Username != "ana" || svc.author.Company == nil || svc.author.Company.Name != "Gráfica" {
		t.Fatalf("unexpected author %+v", svc.author)
	}
	if svc.input.ClientName != "Padaria" {
		t.Fatalf("expected sanitized client name, got %q", svc.input.ClientName)
	}
}

func TestQuotesTransitionRejectsUnknownStatus(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/quotes/{quoteId}/status", QuotesTransition(&stubQuotes{}, nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quotes/q-1/status", bytes.NewBufferString(`{"status":"archived"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quotes/q-1/status", bytes.NewBufferString(`{"status":"sent"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

type stubCustomers struct {
	customers.Service
	creditFor, excluded string
}

func (s *stubCustomers) Credit(ctx context.Context, customerID, excludeQuoteID string) (*customers.CreditSummary, error) {
	s.creditFor, s.excluded = customerID, excludeQuoteID
	return &customers.CreditSummary{CustomerID: customerID, Available: decimal.NewFromInt(40)}, nil
}

func TestCustomersCreditPassesExcludedQuote(t *testing.T) {
	svc := &stubCustomers{}
	r := chi.NewRouter()
	r.Get("/customers/{customerId}/credit", CustomersCredit(svc, nil))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/c-9/credit?excludeQuoteId=q-3", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.creditFor != "c-9" || svc.excluded != "q-3" {
		t.Fatalf("unexpected lookup %q / %q", svc.creditFor, svc.excluded)
	}
}

type stubPayables struct {
	payables.Service
	entries []models.AccountsPayableEntry
}

func (s *stubPayables) List(ctx context.Context) (*payables.Book, error) {
	return payables.NewBook(s.entries), nil
}

func TestPayablesListReportsOutstandingAndOverdue(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	defer func() { now = restore }()

	svc := &stubPayables{entries: []models.AccountsPayableEntry{
		{ID: "a", Name: "Aluguel", Amount: decimal.NewFromInt(1000), DueDate: types.NewDate(2024, 3, 5)},
		{ID: "b", Name: "Tinta", Amount: decimal.NewFromInt(200), DueDate: types.NewDate(2024, 3, 1), IsPaid: true},
		{ID: "c", Name: "Luz", Amount: decimal.NewFromInt(150), DueDate: types.NewDate(2024, 3, 20)},
		{ID: "d", Name: "Papel", Amount: decimal.NewFromInt(50), DueDate: types.NewDate(2024, 3, 12)},
	}}
	rec := httptest.NewRecorder()
	PayablesList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/payables", nil))

	var view PayablesView
	if err := json.Unmarshal(decode(t, rec).Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Entries) != 4 || view.Entries[0].ID != "b" {
		t.Fatalf("expected entries ordered by due date, got %+v", view.Entries)
	}
	if !view.Outstanding.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("unexpected outstanding %s", view.Outstanding)
	}
	if view.OverdueCount != 1 {
		t.Fatalf("expected one overdue entry, got %d", view.OverdueCount)
	}
	if view.UpcomingCount != 1 {
		t.Fatalf("expected one entry due this week, got %d", view.UpcomingCount)
	}
}

func TestPayablesExportStreamsWorkbook(t *testing.T) {
	svc := &stubPayables{entries: []models.AccountsPayableEntry{
		{ID: "a", Name: "Aluguel", Amount: decimal.NewFromInt(1000), DueDate: types.NewDate(2024, 3, 5)},
	}}
	rec := httptest.NewRecorder()
	PayablesExport(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/console/api/payables/export", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="contas-a-pagar.xlsx"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatalf("expected a zip container")
	}
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthReadyReportsFailingDependency(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	deps := map[string]Pinger{"redis": pingFunc(func(context.Context) error { return errors.New("connection refused") })}

	rec := httptest.NewRecorder()
	HealthReady(cfg, nil, deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", rec.Code)
	}

	deps["redis"] = pingFunc(func(context.Context) error { return nil })
	rec = httptest.NewRecorder()
	HealthReady(cfg, nil, deps).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if rec.Header().Get("X-Sistema-Env") != "test" {
		t.Fatalf("missing env header")
	}
}
