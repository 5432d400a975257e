package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SttarkMax/sistema/api/controllers"
	"github.com/SttarkMax/sistema/api/middleware"
	"github.com/SttarkMax/sistema/api/responses"
	"github.com/SttarkMax/sistema/internal/cashflow"
	"github.com/SttarkMax/sistema/internal/catalog"
	"github.com/SttarkMax/sistema/internal/customers"
	"github.com/SttarkMax/sistema/internal/navigation"
	"github.com/SttarkMax/sistema/internal/orders"
	"github.com/SttarkMax/sistema/internal/payables"
	"github.com/SttarkMax/sistema/internal/pricing"
	"github.com/SttarkMax/sistema/internal/quotes"
	"github.com/SttarkMax/sistema/internal/sales"
	"github.com/SttarkMax/sistema/internal/suppliers"
	"github.com/SttarkMax/sistema/internal/users"
	"github.com/SttarkMax/sistema/pkg/config"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/logger"
	"github.com/SttarkMax/sistema/pkg/models"
)

type redisStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	Ping(ctx context.Context) error
}

type companyAPI interface {
	GetCompanyInfo(ctx context.Context) (*models.CompanyInfo, error)
	SaveCompanyInfo(ctx context.Context, info models.CompanyInfo) (models.CompanyInfo, error)
}

type consoleMetrics interface {
	ObserveRequest(route, method string, status int, elapsed time.Duration)
	IncRedirect(screen, redirect string)
}

// Services are the feature services behind /console/api.
type Services struct {
	Catalog   catalog.Service
	Pricing   pricing.Service
	Customers customers.Service
	Quotes    quotes.Service
	Orders    orders.Service
	Suppliers suppliers.Service
	Payables  payables.Service
	Cashflow  cashflow.Service
	Sales     sales.Service
	Users     users.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient redisStore,
	gatherer prometheus.Gatherer,
	httpMetrics consoleMetrics,
	sessions *middleware.Sessions,
	company companyAPI,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, httpMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{"redis": redisClient}))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/console", func(r chi.Router) {
		r.Use(sessions.Middleware)

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(sessions, logg))
			r.Post("/logout", controllers.AuthLogout(sessions, logg))
			r.Get("/me", controllers.AuthMe())
		})

		r.Get("/navigate", controllers.Navigate(httpMetrics))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(logg))
			r.Get("/menu", controllers.Menu())
			r.Get("/company", controllers.CompanyGet(company, sessions, logg))
		})
		r.With(screen(navigation.ScreenSettings, httpMetrics, logg)).Put("/company", controllers.CompanySave(company, sessions, logg))

		r.Route("/api", func(r chi.Router) {
			mountCatalog(r, svc, httpMetrics, logg)
			mountSales(r, svc, httpMetrics, logg)
			mountFinance(r, svc, httpMetrics, logg)

			r.With(screen(navigation.ScreenUsers, httpMetrics, logg)).Route("/users", func(r chi.Router) {
				r.Get("/", controllers.UsersList(svc.Users, logg))
				r.Post("/", controllers.UsersSave(svc.Users, logg))
				r.Put("/{userId}", controllers.UsersSave(svc.Users, logg))
				r.Delete("/{userId}", controllers.UsersDelete(svc.Users, logg))
			})
		})
	})

	return r
}

func screen(s navigation.Screen, recorder consoleMetrics, logg *logger.Logger) func(http.Handler) http.Handler {
	return middleware.RequireScreen(s, recorder, logg)
}

func mountCatalog(r chi.Router, svc Services, recorder consoleMetrics, logg *logger.Logger) {
	r.With(screen(navigation.ScreenProducts, recorder, logg)).Route("/products", func(r chi.Router) {
		r.Get("/", controllers.CatalogListProducts(svc.Catalog, logg))
		r.Post("/", controllers.CatalogSaveProduct(svc.Catalog, logg))
		r.Put("/{productId}", controllers.CatalogSaveProduct(svc.Catalog, logg))
		r.Delete("/{productId}", controllers.CatalogDeleteProduct(svc.Catalog, logg))
	})

	r.With(screen(navigation.ScreenCategories, recorder, logg)).Route("/categories", func(r chi.Router) {
		r.Get("/", controllers.CatalogListCategories(svc.Catalog, logg))
		r.Post("/", controllers.CatalogSaveCategory(svc.Catalog, logg))
		r.Put("/{categoryId}", controllers.CatalogSaveCategory(svc.Catalog, logg))
		r.Delete("/{categoryId}", controllers.CatalogDeleteCategory(svc.Catalog, logg))
	})
}

// mountSales covers the selling flow: customers, quotes, pricing and orders.
func mountSales(r chi.Router, svc Services, recorder consoleMetrics, logg *logger.Logger) {
	r.With(screen(navigation.ScreenCustomers, recorder, logg)).Route("/customers", func(r chi.Router) {
		r.Get("/", controllers.CustomersList(svc.Customers, logg))
		r.Post("/", controllers.CustomersSave(svc.Customers, logg))
		r.Get("/{customerId}", controllers.CustomersGet(svc.Customers, logg))
		r.Put("/{customerId}", controllers.CustomersSave(svc.Customers, logg))
		r.Delete("/{customerId}", controllers.CustomersDelete(svc.Customers, logg))
		r.Get("/{customerId}/credit", controllers.CustomersCredit(svc.Customers, logg))
		r.Post("/{customerId}/down-payments", controllers.CustomersAddDownPayment(svc.Customers, logg))
	})

	r.With(screen(navigation.ScreenQuoteNew, recorder, logg)).Post("/pricing/preview", controllers.PricingPreview(svc.Pricing, logg))

	r.Route("/quotes", func(r chi.Router) {
		r.With(screen(navigation.ScreenQuotes, recorder, logg)).Get("/", controllers.QuotesList(svc.Quotes, logg))
		r.With(screen(navigation.ScreenQuoteNew, recorder, logg)).Post("/", controllers.QuotesCreate(svc.Quotes, logg))
		r.Route("/{quoteId}", func(r chi.Router) {
			r.With(screen(navigation.ScreenQuotes, recorder, logg)).Get("/", controllers.QuotesGet(svc.Quotes, logg))
			r.With(screen(navigation.ScreenQuotes, recorder, logg)).Get("/pdf", controllers.QuotesPDF(svc.Quotes, logg))
			r.With(screen(navigation.ScreenQuoteEdit, recorder, logg)).Put("/", controllers.QuotesUpdate(svc.Quotes, logg))
			r.With(screen(navigation.ScreenQuoteEdit, recorder, logg)).Post("/status", controllers.QuotesTransition(svc.Quotes, logg))
		})
	})

	r.With(screen(navigation.ScreenOrders, recorder, logg)).Route("/orders", func(r chi.Router) {
		r.Get("/", controllers.OrdersList(svc.Orders, logg))
		r.Post("/from-quote/{quoteId}", controllers.OrdersFromQuote(svc.Orders, logg))
		r.Get("/{orderId}", controllers.OrdersGet(svc.Orders, logg))
		r.Post("/{orderId}/status", controllers.OrdersAdvance(svc.Orders, logg))
	})

	r.With(screen(navigation.ScreenSalesPerformance, recorder, logg)).Route("/sales/performance", func(r chi.Router) {
		r.Get("/", controllers.SalesReport(svc.Sales, logg))
		r.Get("/export", controllers.SalesExport(svc.Sales, logg))
	})
}

// mountFinance covers suppliers, accounts payable and cash flow.
func mountFinance(r chi.Router, svc Services, recorder consoleMetrics, logg *logger.Logger) {
	r.With(screen(navigation.ScreenSuppliers, recorder, logg)).Route("/suppliers", func(r chi.Router) {
		r.Get("/", controllers.SuppliersBalances(svc.Suppliers, logg))
		r.Post("/", controllers.SuppliersSave(svc.Suppliers, logg))
		r.Post("/debts", controllers.SuppliersAddDebt(svc.Suppliers, logg))
		r.Delete("/debts/{debtId}", controllers.SuppliersDeleteDebt(svc.Suppliers, logg))
		r.Post("/credits", controllers.SuppliersAddCredit(svc.Suppliers, logg))
		r.Delete("/credits/{creditId}", controllers.SuppliersDeleteCredit(svc.Suppliers, logg))
		r.Put("/{supplierId}", controllers.SuppliersSave(svc.Suppliers, logg))
		r.Delete("/{supplierId}", controllers.SuppliersDelete(svc.Suppliers, logg))
		r.Get("/{supplierId}/statement", controllers.SuppliersStatement(svc.Suppliers, logg))
	})

	r.With(screen(navigation.ScreenAccountsPayable, recorder, logg)).Route("/payables", func(r chi.Router) {
		r.Get("/", controllers.PayablesList(svc.Payables, logg))
		r.Post("/", controllers.PayablesSave(svc.Payables, logg))
		r.Get("/export", controllers.PayablesExport(svc.Payables, logg))
		r.Post("/series", controllers.PayablesCreateSeries(svc.Payables, logg))
		r.Post("/series/preview", controllers.PayablesPreviewSeries(svc.Payables, logg))
		r.Delete("/series/{seriesId}", controllers.PayablesDeleteSeries(svc.Payables, logg))
		r.Put("/{entryId}", controllers.PayablesSave(svc.Payables, logg))
		r.Delete("/{entryId}", controllers.PayablesDeleteEntry(svc.Payables, logg))
		r.Post("/{entryId}/toggle-paid", controllers.PayablesTogglePaid(svc.Payables, logg))
	})

	r.With(screen(navigation.ScreenCashFlow, recorder, logg)).Route("/cashflow", func(r chi.Router) {
		r.Get("/", controllers.CashflowSummary(svc.Cashflow, logg))
		r.Post("/", controllers.CashflowSave(svc.Cashflow, logg))
		r.Put("/{entryId}", controllers.CashflowSave(svc.Cashflow, logg))
		r.Delete("/{entryId}", controllers.CashflowDelete(svc.Cashflow, logg))
	})
}
