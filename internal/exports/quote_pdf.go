package exports

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	mutedColor  = &props.Color{Red: 110, Green: 110, Blue: 110}
	headerFill  = &props.Cell{BackgroundColor: &props.Color{Red: 51, Green: 51, Blue: 51}}
	zebraFill   = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	summaryFill = &props.Cell{BackgroundColor: &props.Color{Red: 235, Green: 235, Blue: 235}}
)

// QuoteFilename is the attachment name of a quote document.
func QuoteFilename(q models.Quote) string {
	number := strings.TrimSpace(q.QuoteNumber)
	if number == "" {
		number = "orcamento"
	}
	return number + ".pdf"
}

// QuotePDF renders the printable quote. The header always uses the company
// snapshot frozen on the quote, never the current company record.
func QuotePDF(q models.Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   mutedColor,
		}).
		Build()

	m := maroto.New(cfg)

	addCompanyHeader(m, q.CompanyInfoSnapshot)
	addQuoteHeader(m, q)
	addItemsHeader(m)
	for i, item := range q.Items {
		addItemRow(m, item, i%2 == 1)
	}
	addTotals(m, q)
	addTerms(m, q)

	doc, err := m.Generate()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to render quote pdf")
	}
	return doc.GetBytes(), nil
}

func addCompanyHeader(m core.Maroto, company models.CompanyInfo) {
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(company.Name, props.Text{Size: 15, Style: fontstyle.Bold, Align: align.Left}),
			),
		),
	)

	lines := []string{}
	if company.Address != "" {
		lines = append(lines, company.Address)
	}
	contact := joinNonEmpty(" | ", company.Phone, company.Email, deref(company.Website), deref(company.Instagram))
	if contact != "" {
		lines = append(lines, contact)
	}
	if cnpj := deref(company.CNPJ); cnpj != "" {
		lines = append(lines, "CNPJ: "+cnpj)
	}
	for _, line := range lines {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(line, props.Text{Size: 8, Color: mutedColor})),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addQuoteHeader(m core.Maroto, q models.Quote) {
	bold := props.Text{Size: 10, Style: fontstyle.Bold}
	plain := props.Text{Size: 9}

	m.AddRows(
		row.New(8).Add(
			col.New(8).Add(text.New("Orçamento "+q.QuoteNumber, props.Text{Size: 12, Style: fontstyle.Bold})),
			col.New(4).Add(text.New(q.Status.Label(), props.Text{Size: 9, Align: align.Right, Color: mutedColor})),
		),
		row.New(6).Add(
			col.New(2).Add(text.New("Cliente", bold)),
			col.New(10).Add(text.New(q.ClientName, plain)),
		),
	)
	if contact := deref(q.ClientContact); contact != "" {
		m.AddRows(row.New(6).Add(
			col.New(2).Add(text.New("Contato", bold)),
			col.New(10).Add(text.New(contact, plain)),
		))
	}

	seller := q.SalespersonUsername
	if name := deref(q.SalespersonFullName); name != "" {
		seller = name
	}
	m.AddRows(
		row.New(6).Add(
			col.New(2).Add(text.New("Emissão", bold)),
			col.New(4).Add(text.New(q.CreatedAt.Format("02/01/2006"), plain)),
			col.New(2).Add(text.New("Vendedor", bold)),
			col.New(4).Add(text.New(seller, plain)),
		),
		row.New(4),
	)
}

func addItemsHeader(m core.Maroto) {
	style := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: &props.Color{Red: 255, Green: 255, Blue: 255}}
	m.AddRows(
		row.New(7).Add(
			col.New(5).Add(text.New("Produto", style)).WithStyle(headerFill),
			col.New(2).Add(text.New("Qtd.", style)).WithStyle(headerFill),
			col.New(2).Add(text.New("Unitário", style)).WithStyle(headerFill),
			col.New(3).Add(text.New("Total", style)).WithStyle(headerFill),
		),
	)
}

func addItemRow(m core.Maroto, item models.QuoteItem, shaded bool) {
	left := props.Text{Size: 8, Align: align.Left, Left: 1}
	right := props.Text{Size: 8, Align: align.Right, Right: 1}

	cols := []core.Col{
		col.New(5).Add(text.New(describeItem(item), left)),
		col.New(2).Add(text.New(formatQuantity(item), right)),
		col.New(2).Add(text.New(types.FormatBRL(item.UnitPrice), right)),
		col.New(3).Add(text.New(types.FormatBRL(item.TotalPrice), right)),
	}
	if shaded {
		for i := range cols {
			cols[i] = cols[i].WithStyle(zebraFill)
		}
	}
	m.AddRows(row.New(6).Add(cols...))
}

func addTotals(m core.Maroto, q models.Quote) {
	m.AddRows(row.New(4))

	addSummaryLine(m, "Subtotal", types.FormatBRL(q.Subtotal), false)
	if q.DiscountAmountCalculated.IsPositive() {
		label := "Desconto"
		if q.DiscountType == enums.DiscountTypePercentage {
			label = fmt.Sprintf("Desconto (%s%%)", q.DiscountValue.String())
		}
		addSummaryLine(m, label, "-"+types.FormatBRL(q.DiscountAmountCalculated), false)
	}
	if dp := q.AppliedDownPayment(); dp.IsPositive() {
		addSummaryLine(m, "Sinal aplicado", "-"+types.FormatBRL(dp), false)
	}
	addSummaryLine(m, "Total à vista", types.FormatBRL(q.TotalCash), true)
	if !q.TotalCard.Equal(q.TotalCash) {
		addSummaryLine(m, "Total no cartão", types.FormatBRL(q.TotalCard), true)
	}
}

func addSummaryLine(m core.Maroto, label, value string, emphasis bool) {
	style := props.Text{Size: 9, Align: align.Right, Right: 1}
	if emphasis {
		style.Style = fontstyle.Bold
		style.Size = 10
	}
	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New(label, style)).WithStyle(summaryFill),
			col.New(3).Add(text.New(value, style)).WithStyle(summaryFill),
		),
	)
}

func addTerms(m core.Maroto, q models.Quote) {
	lines := []string{}
	if method := deref(q.SelectedPaymentMethod); method != "" {
		lines = append(lines, "Forma de pagamento: "+method)
	}
	if date := deref(q.PaymentDate); date != "" {
		lines = append(lines, "Data de pagamento: "+displayDate(date))
	}
	if deadline := deref(q.DeliveryDeadline); deadline != "" {
		lines = append(lines, "Prazo de entrega: "+displayDate(deadline))
	}
	if notes := deref(q.Notes); notes != "" {
		lines = append(lines, "Observações: "+notes)
	}
	if len(lines) == 0 {
		return
	}

	m.AddRows(row.New(6))
	for _, line := range lines {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(line, props.Text{Size: 8}))))
	}
}

func describeItem(item models.QuoteItem) string {
	if item.PricingModel != enums.PricingModelPerSquareMeter || item.Width == nil || item.Height == nil {
		return item.ProductName
	}
	desc := fmt.Sprintf("%s (%s x %s m", item.ProductName, item.Width.String(), item.Height.String())
	if item.ItemCountForAreaCalc != nil && item.ItemCountForAreaCalc.GreaterThan(decimal.NewFromInt(1)) {
		desc += " x " + item.ItemCountForAreaCalc.String()
	}
	return desc + ")"
}

func formatQuantity(item models.QuoteItem) string {
	qty := item.Quantity.String()
	if item.PricingModel == enums.PricingModelPerSquareMeter {
		return item.Quantity.StringFixed(2) + " m²"
	}
	return qty
}

// displayDate turns YYYY-MM-DD into DD/MM/YYYY, leaving other inputs untouched.
func displayDate(value string) string {
	d, err := types.ParseDate(value)
	if err != nil {
		return value
	}
	return d.Format("02/01/2006")
}

func joinNonEmpty(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
