package models

import (
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
)

// AccountsPayableEntry is a bill to pay. Installments of one debt share SeriesID.
type AccountsPayableEntry struct {
	ID                        string          `json:"id,omitempty"`
	Name                      string          `json:"name" validate:"required"`
	Amount                    decimal.Decimal `json:"amount"`
	DueDate                   types.Date      `json:"dueDate"`
	IsPaid                    bool            `json:"isPaid"`
	CreatedAt                 time.Time       `json:"createdAt"`
	Notes                     *string         `json:"notes,omitempty"`
	SeriesID                  *string         `json:"seriesId,omitempty"`
	TotalInstallmentsInSeries *int            `json:"totalInstallmentsInSeries,omitempty"`
	InstallmentNumberOfSeries *int            `json:"installmentNumberOfSeries,omitempty"`
}

// InSeries reports whether the entry belongs to the given installment series.
func (e AccountsPayableEntry) InSeries(seriesID string) bool {
	return e.SeriesID != nil && *e.SeriesID == seriesID
}

// CashFlowEntry is a ledger movement. Amount is positive for income, negative for expense.
type CashFlowEntry struct {
	ID             string             `json:"id,omitempty"`
	Date           types.Date         `json:"date"`
	Description    string             `json:"description"`
	Amount         decimal.Decimal    `json:"amount"`
	Type           enums.CashFlowType `json:"type"`
	Category       *string            `json:"category,omitempty"`
	RelatedOrderID *string            `json:"relatedOrderId,omitempty"`
}
