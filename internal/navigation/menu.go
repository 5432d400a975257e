package navigation

import "github.com/SttarkMax/sistema/pkg/enums"

// MenuItem is one sidebar entry.
type MenuItem struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Screen Screen `json:"screen"`
}

var menuTable = []MenuItem{
	{Name: "Painel", Path: HomePath, Screen: ScreenDashboard},
	{Name: "Clientes", Path: "/customers", Screen: ScreenCustomers},
	{Name: "Produtos", Path: "/products", Screen: ScreenProducts},
	{Name: "Categorias", Path: "/categories", Screen: ScreenCategories},
	{Name: "Orçamentos", Path: "/quotes/new", Screen: ScreenQuoteNew},
	{Name: "Fornecedores", Path: "/suppliers", Screen: ScreenSuppliers},
	{Name: "Contas a Pagar", Path: "/accounts-payable", Screen: ScreenAccountsPayable},
	{Name: "Vendas por Usuário", Path: "/sales/user-performance", Screen: ScreenSalesPerformance},
	{Name: "Usuários", Path: "/users", Screen: ScreenUsers},
	{Name: "Empresa", Path: "/settings", Screen: ScreenSettings},
}

// Menu lists the sidebar entries role may open, in display order.
func Menu(role enums.UserRole) []MenuItem {
	out := make([]MenuItem, 0, len(menuTable))
	for _, item := range menuTable {
		route, ok := RouteFor(item.Screen)
		if !ok || !route.Allows(role) {
			continue
		}
		out = append(out, item)
	}
	return out
}
