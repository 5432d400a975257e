package exports

import (
	"bytes"
	"testing"
	"time"

	"github.com/SttarkMax/sistema/internal/sales"
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr[T any](v T) *T { return &v }

func sampleQuote() models.Quote {
	width := decimal.NewFromFloat(1.5)
	height := decimal.NewFromInt(2)
	dp := decimal.NewFromInt(50)
	return models.Quote{
		ID:          "q-1",
		QuoteNumber: "ORC-000042",
		ClientName:  "Gráfica do Bairro",
		Items: []models.QuoteItem{
			{
				ProductName:  "Cartão de visita",
				Quantity:     decimal.NewFromInt(1000),
				UnitPrice:    decimal.RequireFromString("0.12"),
				TotalPrice:   decimal.NewFromInt(120),
				PricingModel: enums.PricingModelPerUnit,
			},
			{
				ProductName:  "Lona",
				Quantity:     decimal.NewFromInt(3),
				UnitPrice:    decimal.NewFromInt(40),
				TotalPrice:   decimal.NewFromInt(120),
				PricingModel: enums.PricingModelPerSquareMeter,
				Width:        &width,
				Height:       &height,
			},
		},
		Subtotal:                 decimal.NewFromInt(240),
		DiscountType:             enums.DiscountTypePercentage,
		DiscountValue:            decimal.NewFromInt(10),
		DiscountAmountCalculated: decimal.NewFromInt(24),
		SubtotalAfterDiscount:    decimal.NewFromInt(216),
		DownPaymentApplied:       &dp,
		TotalCash:                decimal.NewFromInt(166),
		TotalCard:                decimal.NewFromInt(180),
		PaymentDate:              ptr("2026-03-10"),
		Notes:                    ptr("Retirar no balcão"),
		CreatedAt:                time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:                   enums.QuoteStatusSent,
		SalespersonUsername:      "ana",
		CompanyInfoSnapshot: models.CompanyInfo{
			Name:    "Sistema Gráfica",
			Address: "Rua A, 10",
			Phone:   "11 9999-0000",
			CNPJ:    ptr("00.000.000/0001-00"),
		},
	}
}

func TestQuotePDFProducesDocument(t *testing.T) {
	out, err := QuotePDF(sampleQuote())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")), "expected a pdf document")
}

func TestQuotePDFWithoutItems(t *testing.T) {
	q := sampleQuote()
	q.Items = nil
	q.DownPaymentApplied = nil
	out, err := QuotePDF(q)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestQuoteFilename(t *testing.T) {
	assert.Equal(t, "ORC-000042.pdf", QuoteFilename(sampleQuote()))
	assert.Equal(t, "orcamento.pdf", QuoteFilename(models.Quote{}))
}

func TestDescribeItem(t *testing.T) {
	q := sampleQuote()
	assert.Equal(t, "Cartão de visita", describeItem(q.Items[0]))
	assert.Equal(t, "Lona (1.5 x 2 m)", describeItem(q.Items[1]))

	count := decimal.NewFromInt(3)
	q.Items[1].ItemCountForAreaCalc = &count
	assert.Equal(t, "Lona (1.5 x 2 m x 3)", describeItem(q.Items[1]))
	assert.Equal(t, "3.00 m²", formatQuantity(q.Items[1]))
}

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "10/03/2026", displayDate("2026-03-10"))
	assert.Equal(t, "amanhã", displayDate("amanhã"))
}

func TestPayablesWorkbook(t *testing.T) {
	entries := []models.AccountsPayableEntry{
		{
			Name:                      "Aluguel",
			Amount:                    decimal.RequireFromString("1500.50"),
			DueDate:                   types.NewDate(2026, time.April, 5),
			SeriesID:                  ptr("s-1"),
			InstallmentNumberOfSeries: ptr(1),
			TotalInstallmentsInSeries: ptr(3),
		},
		{
			Name:    "=HYPERLINK(\"http://evil\")",
			Amount:  decimal.NewFromInt(10),
			DueDate: types.NewDate(2026, time.April, 6),
			IsPaid:  true,
		},
	}

	out, err := PayablesWorkbook(entries)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	const sheetName = "Contas a Pagar"
	get := func(cell string) string {
		v, err := f.GetCellValue(sheetName, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Descrição", get("A1"))
	assert.Equal(t, "Aluguel", get("A2"))
	assert.Equal(t, "05/04/2026", get("C2"))
	assert.Equal(t, "Não", get("D2"))
	assert.Equal(t, "1/3", get("E2"))
	assert.Equal(t, "'=HYPERLINK(\"http://evil\")", get("A3"))
	assert.Equal(t, "Sim", get("D3"))
	assert.Equal(t, "Total", get("A5"))

	formula, err := f.GetCellFormula(sheetName, "B5")
	require.NoError(t, err)
	assert.Equal(t, "SUM(B2:B3)", formula)
}

func TestSalesWorkbook(t *testing.T) {
	rows := []sales.Performance{
		{
			Username:       "ana",
			FullName:       "Ana Souza",
			QuotesIssued:   4,
			QuotesWon:      1,
			IssuedTotal:    decimal.NewFromInt(400),
			WonTotal:       decimal.NewFromInt(100),
			ConversionRate: decimal.NewFromInt(25),
		},
	}

	out, err := SalesWorkbook(rows, time.Date(2026, 5, 1, 14, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	const sheetName = "Desempenho de Vendas"
	name, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", name)

	issued, err := f.GetCellValue(sheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "4", issued)

	footer, err := f.GetCellValue(sheetName, "A4")
	require.NoError(t, err)
	assert.Equal(t, "Gerado em 01/05/2026 14:30", footer)
}

func TestSanitizeExcelCell(t *testing.T) {
	assert.Equal(t, "", sanitizeExcelCell(""))
	assert.Equal(t, "'+1", sanitizeExcelCell("+1"))
	assert.Equal(t, "'@cmd", sanitizeExcelCell("@cmd"))
	assert.Equal(t, "Lona", sanitizeExcelCell("Lona"))
}
