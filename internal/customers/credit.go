package customers

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

// CreditSummary is a customer's prepaid balance.
type CreditSummary struct {
	CustomerID        string          `json:"customerId"`
	TotalDownPayments decimal.Decimal `json:"totalDownPayments"`
	Applied           decimal.Decimal `json:"applied"`
	Available         decimal.Decimal `json:"available"`
}

// consumesCredit reports whether a quote in status still holds the down payment it applied.
func consumesCredit(status enums.QuoteStatus) bool {
	return status != enums.QuoteStatusCancelled && status != enums.QuoteStatusRejected
}

// AvailableCredit sums the customer's down payments and subtracts what their live
// quotes already apply. excludeQuoteID leaves one quote out, so a quote being
// edited does not count against itself. The result never goes below zero.
func AvailableCredit(customer models.Customer, quotes []models.Quote, excludeQuoteID string) CreditSummary {
	total := customer.TotalDownPayments()
	applied := decimal.Zero
	for _, q := range quotes {
		if q.CustomerID == nil || *q.CustomerID != customer.ID {
			continue
		}
		if excludeQuoteID != "" && q.ID == excludeQuoteID {
			continue
		}
		if !consumesCredit(q.Status) {
			continue
		}
		applied = applied.Add(q.AppliedDownPayment())
	}
	return CreditSummary{
		CustomerID:        customer.ID,
		TotalDownPayments: total,
		Applied:           applied,
		Available:         decimal.Max(decimal.Zero, total.Sub(applied)),
	}
}
