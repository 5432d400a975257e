package navigation

import (
	"github.com/SttarkMax/sistema/pkg/enums"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Screen names a view of the console.
type Screen string

const (
	ScreenLogin            Screen = "login"
	ScreenDashboard        Screen = "dashboard"
	ScreenProducts         Screen = "products"
	ScreenCategories       Screen = "categories"
	ScreenCustomers        Screen = "customers"
	ScreenQuoteNew         Screen = "quote_new"
	ScreenQuoteEdit        Screen = "quote_edit"
	ScreenQuotes           Screen = "quotes"
	ScreenSuppliers        Screen = "suppliers"
	ScreenAccountsPayable  Screen = "accounts_payable"
	ScreenSalesPerformance Screen = "sales_performance"
	ScreenUsers            Screen = "users"
	ScreenSettings         Screen = "settings"
	ScreenOrders           Screen = "orders"
	ScreenCashFlow         Screen = "cashflow"
)

// Route binds a path pattern to a screen. A nil Roles list admits every
// authenticated role; Public routes are only shown to anonymous visitors.
type Route struct {
	Pattern string
	Screen  Screen
	Public  bool
	Roles   []enums.UserRole
}

var (
	adminOnly     = []enums.UserRole{enums.UserRoleAdmin}
	adminAndSales = []enums.UserRole{enums.UserRoleAdmin, enums.UserRoleSales}
	everyRole     = []enums.UserRole{enums.UserRoleAdmin, enums.UserRoleSales, enums.UserRoleViewer}
)

var routeTable = []Route{
	{Pattern: LoginPath, Screen: ScreenLogin, Public: true},
	{Pattern: HomePath, Screen: ScreenDashboard},
	{Pattern: "/products", Screen: ScreenProducts, Roles: adminAndSales},
	{Pattern: "/categories", Screen: ScreenCategories, Roles: adminAndSales},
	{Pattern: "/customers", Screen: ScreenCustomers, Roles: adminAndSales},
	{Pattern: "/quotes/new", Screen: ScreenQuoteNew, Roles: adminAndSales},
	{Pattern: "/quotes/edit/:quoteId", Screen: ScreenQuoteEdit, Roles: adminAndSales},
	{Pattern: "/quotes/all", Screen: ScreenQuotes, Roles: everyRole},
	{Pattern: "/suppliers", Screen: ScreenSuppliers, Roles: adminAndSales},
	{Pattern: "/accounts-payable", Screen: ScreenAccountsPayable, Roles: adminOnly},
	{Pattern: "/sales/user-performance", Screen: ScreenSalesPerformance, Roles: adminOnly},
	{Pattern: "/users", Screen: ScreenUsers, Roles: adminOnly},
	{Pattern: "/settings", Screen: ScreenSettings, Roles: adminOnly},
	{Pattern: "/orders", Screen: ScreenOrders, Roles: adminAndSales},
	{Pattern: "/cashflow", Screen: ScreenCashFlow, Roles: adminOnly},
}

// Routes returns a copy of the route table.
func Routes() []Route {
	out := make([]Route, len(routeTable))
	copy(out, routeTable)
	return out
}

// RouteFor returns the route that renders screen.
func RouteFor(screen Screen) (Route, bool) {
	for _, route := range routeTable {
		if route.Screen == screen {
			return route, true
		}
	}
	return Route{}, false
}

// Allows reports whether an authenticated user with role may open the route.
func (r Route) Allows(role enums.UserRole) bool {
	if r.Public {
		return false
	}
	if r.Roles == nil {
		return role.IsValid()
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}
