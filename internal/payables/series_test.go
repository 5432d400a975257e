package payables

import (
	"testing"
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.March, 10, 14, 30, 0, 0, time.UTC)

func baseEntry(due types.Date) models.AccountsPayableEntry {
	return models.AccountsPayableEntry{
		Name:    "Plotter HP Latex",
		Amount:  decimal.RequireFromString("1500.00"),
		DueDate: due,
	}
}

func TestGenerateSeriesMonthlyClampsMonthEnd(t *testing.T) {
	entries, err := GenerateSeries(baseEntry(types.NewDate(2023, time.January, 31)), 4, enums.InstallmentFrequencyMonthly, fixedNow)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	want := []string{"2023-01-31", "2023-02-28", "2023-03-31", "2023-04-30"}
	for i, entry := range entries {
		assert.Equal(t, want[i], entry.DueDate.String())
	}
}

func TestGenerateSeriesMonthlyLeapYear(t *testing.T) {
	entries, err := GenerateSeries(baseEntry(types.NewDate(2024, time.January, 31)), 2, enums.InstallmentFrequencyMonthly, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", entries[1].DueDate.String())
}

func TestGenerateSeriesMonthlyCrossesYear(t *testing.T) {
	entries, err := GenerateSeries(baseEntry(types.NewDate(2024, time.November, 15)), 3, enums.InstallmentFrequencyMonthly, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", entries[2].DueDate.String())
}

func TestGenerateSeriesWeekly(t *testing.T) {
	entries, err := GenerateSeries(baseEntry(types.NewDate(2024, time.December, 20)), 3, enums.InstallmentFrequencyWeekly, fixedNow)
	require.NoError(t, err)

	want := []string{"2024-12-20", "2024-12-27", "2025-01-03"}
	for i, entry := range entries {
		assert.Equal(t, want[i], entry.DueDate.String())
	}
}

func TestGenerateSeriesSharedFields(t *testing.T) {
	notes := "Financiamento"
	base := baseEntry(types.NewDate(2025, time.May, 5))
	base.Notes = &notes
	base.IsPaid = true

	entries, err := GenerateSeries(base, 12, enums.InstallmentFrequencyMonthly, fixedNow)
	require.NoError(t, err)
	require.Len(t, entries, 12)

	seriesID := *entries[0].SeriesID
	require.NotEmpty(t, seriesID)
	for k, entry := range entries {
		require.NotNil(t, entry.SeriesID)
		assert.Equal(t, seriesID, *entry.SeriesID)
		assert.Equal(t, 12, *entry.TotalInstallmentsInSeries)
		assert.Equal(t, k+1, *entry.InstallmentNumberOfSeries)
		assert.True(t, entry.Amount.Equal(base.Amount), "full amount per installment")
		assert.False(t, entry.IsPaid)
		assert.Equal(t, fixedNow, entry.CreatedAt)
		assert.Equal(t, "Financiamento", *entry.Notes)
		if k > 0 {
			assert.True(t, entries[k-1].DueDate.Before(entry.DueDate), "due dates strictly increasing")
		}
	}
}

func TestGenerateSeriesUsesNewSeriesIDEachCall(t *testing.T) {
	base := baseEntry(types.NewDate(2025, time.May, 5))
	a, err := GenerateSeries(base, 2, enums.InstallmentFrequencyWeekly, fixedNow)
	require.NoError(t, err)
	b, err := GenerateSeries(base, 2, enums.InstallmentFrequencyWeekly, fixedNow)
	require.NoError(t, err)
	assert.NotEqual(t, *a[0].SeriesID, *b[0].SeriesID)
}

func TestGenerateSeriesSingleInstallment(t *testing.T) {
	entries, err := GenerateSeries(baseEntry(types.NewDate(2025, time.May, 5)), 1, enums.InstallmentFrequencyMonthly, fixedNow)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-05-05", entries[0].DueDate.String())
}

func TestGenerateSeriesValidation(t *testing.T) {
	due := types.NewDate(2025, time.May, 5)
	tests := []struct {
		name  string
		base  models.AccountsPayableEntry
		n     int
		freq  enums.InstallmentFrequency
		field string
	}{
		{"zero installments", baseEntry(due), 0, enums.InstallmentFrequencyMonthly, "installments"},
		{"too many installments", baseEntry(due), MaxInstallments + 1, enums.InstallmentFrequencyMonthly, "installments"},
		{"unknown frequency", baseEntry(due), 2, enums.InstallmentFrequency("daily"), "frequency"},
		{"missing due date", baseEntry(types.Date{}), 2, enums.InstallmentFrequencyWeekly, "baseEntry.dueDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSeries(tt.base, tt.n, tt.freq, fixedNow)
			typed := pkgerrors.As(err)
			require.NotNil(t, typed)
			assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
			assert.Equal(t, map[string]any{"field": tt.field}, typed.Details())
		})
	}
}

func TestAddMonthsClamp(t *testing.T) {
	tests := []struct {
		from types.Date
		n    int
		want string
	}{
		{types.NewDate(2023, time.January, 31), 1, "2023-02-28"},
		{types.NewDate(2023, time.March, 31), 1, "2023-04-30"},
		{types.NewDate(2023, time.August, 31), 6, "2024-02-29"},
		{types.NewDate(2023, time.May, 15), 0, "2023-05-15"},
		{types.NewDate(2023, time.December, 31), 2, "2024-02-29"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AddMonths(tt.from, tt.n).String(), "from %s +%d", tt.from, tt.n)
	}
}
