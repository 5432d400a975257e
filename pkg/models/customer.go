package models

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/shopspring/decimal"
)

// DownPaymentEntry is a prepayment credited to a customer. Entries are append-only.
type DownPaymentEntry struct {
	ID          string          `json:"id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
}

type Customer struct {
	ID             string             `json:"id,omitempty"`
	Name           string             `json:"name" validate:"required"`
	DocumentType   enums.DocumentType `json:"documentType"`
	DocumentNumber *string            `json:"documentNumber,omitempty"`
	Phone          string             `json:"phone"`
	Email          *string            `json:"email,omitempty"`
	Address        *string            `json:"address,omitempty"`
	City           *string            `json:"city,omitempty"`
	PostalCode     *string            `json:"postalCode,omitempty"`
	DownPayments   []DownPaymentEntry `json:"downPayments"`
}

// TotalDownPayments sums every down payment ever registered for the customer.
func (c Customer) TotalDownPayments() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range c.DownPayments {
		total = total.Add(entry.Amount)
	}
	return total
}
