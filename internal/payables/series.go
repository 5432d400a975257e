package payables

import (
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/google/uuid"
)

// MaxInstallments bounds a single series.
const MaxInstallments = 360

// SeriesRequest is the wire body of POST /accounts-payable/series.
type SeriesRequest struct {
	BaseEntry    models.AccountsPayableEntry `json:"baseEntry"`
	Installments int                         `json:"installments" validate:"gte=1,lte=360"`
	Frequency    enums.InstallmentFrequency  `json:"frequency" validate:"required"`
}

// Validate checks the request the same way GenerateSeries would.
func (r SeriesRequest) Validate() error {
	if r.BaseEntry.Name == "" {
		return invalidInput("baseEntry.name", "entry name is required")
	}
	if r.BaseEntry.Amount.IsNegative() {
		return invalidInput("baseEntry.amount", "amount must not be negative")
	}
	if r.BaseEntry.DueDate.IsZero() {
		return invalidInput("baseEntry.dueDate", "due date is required")
	}
	if r.Installments < 1 || r.Installments > MaxInstallments {
		return invalidInput("installments", "installments must be between 1 and 360")
	}
	if !r.Frequency.IsValid() {
		return invalidInput("frequency", "frequency must be weekly or monthly")
	}
	return nil
}

// GenerateSeries expands base into n installments sharing a new series id. Every
// installment carries the full base amount; the caller splits beforehand if needed.
func GenerateSeries(base models.AccountsPayableEntry, n int, frequency enums.InstallmentFrequency, now time.Time) ([]models.AccountsPayableEntry, error) {
	req := SeriesRequest{BaseEntry: base, Installments: n, Frequency: frequency}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	seriesID := uuid.NewString()
	total := n
	entries := make([]models.AccountsPayableEntry, 0, n)
	for k := 1; k <= n; k++ {
		number := k
		sid := seriesID
		entry := models.AccountsPayableEntry{
			Name:                      base.Name,
			Amount:                    base.Amount,
			DueDate:                   DueDate(base.DueDate, frequency, k),
			IsPaid:                    false,
			CreatedAt:                 now,
			Notes:                     base.Notes,
			SeriesID:                  &sid,
			TotalInstallmentsInSeries: &total,
			InstallmentNumberOfSeries: &number,
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DueDate returns the due date of installment k (1-indexed).
func DueDate(base types.Date, frequency enums.InstallmentFrequency, k int) types.Date {
	if frequency == enums.InstallmentFrequencyWeekly {
		return AddWeeks(base, k-1)
	}
	return AddMonths(base, k-1)
}

// AddWeeks moves d forward by n weeks.
func AddWeeks(d types.Date, n int) types.Date {
	return types.DateOf(d.AddDate(0, 0, 7*n))
}

// AddMonths moves d forward by n calendar months, clamping the day to the last
// day of the target month (Jan 31 + 1 month = Feb 28 or 29).
func AddMonths(d types.Date, n int) types.Date {
	year, month, day := d.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return types.NewDate(firstOfTarget.Year(), firstOfTarget.Month(), day)
}

func invalidInput(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
