package pricing

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

// Totals are the derived money fields of a quote.
type Totals struct {
	Subtotal                 decimal.Decimal `json:"subtotal"`
	DiscountAmountCalculated decimal.Decimal `json:"discountAmountCalculated"`
	SubtotalAfterDiscount    decimal.Decimal `json:"subtotalAfterDiscount"`
	TotalCash                decimal.Decimal `json:"totalCash"`
	TotalCard                decimal.Decimal `json:"totalCard"`
}

// ComputeQuoteTotals derives quote totals. The discount is computed on the cash
// subtotal and subtracted flat from both bases, as is the applied down payment;
// neither total goes below zero.
func ComputeQuoteTotals(items []models.QuoteItem, discountType enums.DiscountType, discountValue, downPaymentApplied decimal.Decimal) (Totals, error) {
	if discountType == "" {
		discountType = enums.DiscountTypeNone
	}
	if !discountType.IsValid() {
		return Totals{}, invalidInput("discountType", "unknown discount type")
	}
	if discountValue.IsNegative() {
		return Totals{}, invalidInput("discountValue", "discount value must not be negative")
	}
	if downPaymentApplied.IsNegative() {
		return Totals{}, invalidInput("downPaymentApplied", "down payment must not be negative")
	}

	subtotal := decimal.Zero
	cardSubtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
		cardSubtotal = cardSubtotal.Add(item.CardTotal())
	}

	var discount decimal.Decimal
	switch discountType {
	case enums.DiscountTypePercentage:
		discount = subtotal.Mul(discountValue).Div(hundred)
	case enums.DiscountTypeFixed:
		discount = discountValue
	default:
		discount = decimal.Zero
	}
	discount = clamp(discount, decimal.Zero, subtotal)

	afterDiscount := subtotal.Sub(discount)
	return Totals{
		Subtotal:                 subtotal,
		DiscountAmountCalculated: discount,
		SubtotalAfterDiscount:    afterDiscount,
		TotalCash:                decimal.Max(decimal.Zero, afterDiscount.Sub(downPaymentApplied)),
		TotalCard:                decimal.Max(decimal.Zero, cardSubtotal.Sub(discount).Sub(downPaymentApplied)),
	}, nil
}

// Apply copies the totals onto q.
func (t Totals) Apply(q *models.Quote) {
	q.Subtotal = t.Subtotal
	q.DiscountAmountCalculated = t.DiscountAmountCalculated
	q.SubtotalAfterDiscount = t.SubtotalAfterDiscount
	q.TotalCash = t.TotalCash
	q.TotalCard = t.TotalCard
}

// Recalculate recomputes and stores q's totals from its items and discount.
func Recalculate(q *models.Quote) error {
	totals, err := ComputeQuoteTotals(q.Items, q.DiscountType, q.DiscountValue, q.AppliedDownPayment())
	if err != nil {
		return err
	}
	totals.Apply(q)
	return nil
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
