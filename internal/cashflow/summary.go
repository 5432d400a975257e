package cashflow

import (
	"sort"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
)

const payablesCategory = "Contas a Pagar"

// Summary totals the ledger over a range. Expenses are reported as a positive amount.
type Summary struct {
	Range      types.DateRange            `json:"range"`
	Income     decimal.Decimal            `json:"income"`
	Expenses   decimal.Decimal            `json:"expenses"`
	Net        decimal.Decimal            `json:"net"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	Entries    []models.CashFlowEntry     `json:"entries"`
}

// Normalize signs amount by type: income positive, expense negative.
func Normalize(entry models.CashFlowEntry) models.CashFlowEntry {
	abs := entry.Amount.Abs()
	if entry.Type == enums.CashFlowTypeExpense {
		entry.Amount = abs.Neg()
	} else {
		entry.Amount = abs
	}
	return entry
}

// FromPayable turns a paid bill into the expense it represents.
func FromPayable(p models.AccountsPayableEntry) models.CashFlowEntry {
	category := payablesCategory
	return models.CashFlowEntry{
		ID:          "ap:" + p.ID,
		Date:        p.DueDate,
		Description: p.Name,
		Amount:      p.Amount.Abs().Neg(),
		Type:        enums.CashFlowTypeExpense,
		Category:    &category,
	}
}

// Summarize totals the entries inside rng. When payables is non-nil its paid
// entries are folded in as expenses dated by their due date.
func Summarize(entries []models.CashFlowEntry, payables []models.AccountsPayableEntry, rng types.DateRange) Summary {
	all := make([]models.CashFlowEntry, 0, len(entries)+len(payables))
	for _, e := range entries {
		all = append(all, Normalize(e))
	}
	for _, p := range payables {
		if p.IsPaid {
			all = append(all, FromPayable(p))
		}
	}

	out := Summary{
		Range:      rng,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		ByCategory: map[string]decimal.Decimal{},
		Entries:    []models.CashFlowEntry{},
	}
	for _, e := range all {
		if !rng.Contains(e.Date) {
			continue
		}
		if e.Type == enums.CashFlowTypeExpense {
			out.Expenses = out.Expenses.Add(e.Amount.Neg())
		} else {
			out.Income = out.Income.Add(e.Amount)
		}
		category := "Sem categoria"
		if e.Category != nil && *e.Category != "" {
			category = *e.Category
		}
		out.ByCategory[category] = out.ByCategory[category].Add(e.Amount)
		out.Entries = append(out.Entries, e)
	}
	out.Net = out.Income.Sub(out.Expenses)

	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Date.Before(out.Entries[j].Date)
	})
	return out
}
