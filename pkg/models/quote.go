package models

import (
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/shopspring/decimal"
)

// QuoteItem is one priced line of a quote. For PER_SQUARE_METER lines Quantity is
// the total area in m² (width × height × itemCountForAreaCalc).
type QuoteItem struct {
	ProductID            string             `json:"productId"`
	ProductName          string             `json:"productName"`
	Quantity             decimal.Decimal    `json:"quantity"`
	UnitPrice            decimal.Decimal    `json:"unitPrice"`
	TotalPrice           decimal.Decimal    `json:"totalPrice"`
	CardUnitPrice        *decimal.Decimal   `json:"cardUnitPrice,omitempty"`
	CardTotalPrice       *decimal.Decimal   `json:"cardTotalPrice,omitempty"`
	PricingModel         enums.PricingModel `json:"pricingModel"`
	Width                *decimal.Decimal   `json:"width,omitempty"`
	Height               *decimal.Decimal   `json:"height,omitempty"`
	ItemCountForAreaCalc *decimal.Decimal   `json:"itemCountForAreaCalc,omitempty"`
}

// CardTotal returns the card-basis total of the line, or the cash total when the
// line carries no card price.
func (i QuoteItem) CardTotal() decimal.Decimal {
	if i.CardTotalPrice != nil {
		return *i.CardTotalPrice
	}
	return i.TotalPrice
}

type Quote struct {
	ID            string      `json:"id,omitempty"`
	QuoteNumber   string      `json:"quoteNumber"`
	CustomerID    *string     `json:"customerId,omitempty"`
	ClientName    string      `json:"clientName"`
	ClientContact *string     `json:"clientContact,omitempty"`
	Items         []QuoteItem `json:"items"`

	Subtotal                 decimal.Decimal    `json:"subtotal"`
	DiscountType             enums.DiscountType `json:"discountType"`
	DiscountValue            decimal.Decimal    `json:"discountValue"`
	DiscountAmountCalculated decimal.Decimal    `json:"discountAmountCalculated"`
	SubtotalAfterDiscount    decimal.Decimal    `json:"subtotalAfterDiscount"`
	TotalCash                decimal.Decimal    `json:"totalCash"`
	TotalCard                decimal.Decimal    `json:"totalCard"`
	DownPaymentApplied       *decimal.Decimal   `json:"downPaymentApplied,omitempty"`

	SelectedPaymentMethod *string `json:"selectedPaymentMethod,omitempty"`
	PaymentDate           *string `json:"paymentDate,omitempty"`
	DeliveryDeadline      *string `json:"deliveryDeadline,omitempty"`

	CreatedAt           time.Time         `json:"createdAt"`
	Status              enums.QuoteStatus `json:"status"`
	CompanyInfoSnapshot CompanyInfo       `json:"companyInfoSnapshot"`
	Notes               *string           `json:"notes,omitempty"`
	SalespersonUsername string            `json:"salespersonUsername"`
	SalespersonFullName *string           `json:"salespersonFullName,omitempty"`
}

// AppliedDownPayment returns the credit used by the quote, zero when unset.
func (q Quote) AppliedDownPayment() decimal.Decimal {
	if q.DownPaymentApplied == nil {
		return decimal.Zero
	}
	return *q.DownPaymentApplied
}
