package suppliers

import (
	"sort"
	"strings"

	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

// Balance is what the shop owes one supplier.
type Balance struct {
	Supplier     models.Supplier `json:"supplier"`
	TotalDebts   decimal.Decimal `json:"totalDebts"`
	TotalCredits decimal.Decimal `json:"totalCredits"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// Statement is a supplier's balance with the movements behind it.
type Statement struct {
	Balance
	Debts   []models.Debt           `json:"debts"`
	Credits []models.SupplierCredit `json:"credits"`
}

// Balances computes debts minus credits per supplier, largest outstanding first.
// Overpaid suppliers show a negative outstanding amount.
func Balances(suppliers []models.Supplier, debts []models.Debt, credits []models.SupplierCredit) []Balance {
	owed := make(map[string]decimal.Decimal, len(suppliers))
	paid := make(map[string]decimal.Decimal, len(suppliers))
	for _, d := range debts {
		owed[d.SupplierID] = owed[d.SupplierID].Add(d.TotalAmount)
	}
	for _, c := range credits {
		paid[c.SupplierID] = paid[c.SupplierID].Add(c.Amount)
	}

	out := make([]Balance, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, Balance{
			Supplier:     s,
			TotalDebts:   owed[s.ID],
			TotalCredits: paid[s.ID],
			Outstanding:  owed[s.ID].Sub(paid[s.ID]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Outstanding.Cmp(out[j].Outstanding); c != 0 {
			return c > 0
		}
		return strings.ToLower(out[i].Supplier.Name) < strings.ToLower(out[j].Supplier.Name)
	})
	return out
}
