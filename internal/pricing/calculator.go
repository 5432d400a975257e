package pricing

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Measure is what the seller typed for a line: a quantity of units, or the
// dimensions in meters of one piece and how many pieces.
type Measure struct {
	Quantity  decimal.Decimal
	Width     *decimal.Decimal
	Height    *decimal.Decimal
	ItemCount *decimal.Decimal
}

// Calculator prices lines. A zero Calculator applies no card surcharge.
type Calculator struct {
	cardSurchargePercent decimal.Decimal
}

// NewCalculator returns a calculator whose card price falls back to the cash
// price plus cardSurchargePercent when a product has no card override.
func NewCalculator(cardSurchargePercent decimal.Decimal) Calculator {
	return Calculator{cardSurchargePercent: cardSurchargePercent}
}

// ComputeLineTotal prices a line with no card surcharge.
func ComputeLineTotal(product *models.Product, m Measure) (models.QuoteItem, error) {
	return Calculator{}.LineTotal(product, m)
}

// UnitPrices resolves the cash and card price of one unit (or one m²) of product.
func (c Calculator) UnitPrices(product models.Product) models.ProductPrice {
	cash := product.BasePrice
	if product.CustomCashPrice != nil {
		cash = *product.CustomCashPrice
	}
	card := cash.Add(cash.Mul(c.cardSurchargePercent).Div(hundred))
	if product.CustomCardPrice != nil {
		card = *product.CustomCardPrice
	}
	return models.ProductPrice{Cash: cash, Card: card}
}

// LineTotal prices one quote line. UnitPrice/TotalPrice carry the cash basis and
// CardUnitPrice/CardTotalPrice the card basis.
func (c Calculator) LineTotal(product *models.Product, m Measure) (models.QuoteItem, error) {
	if product == nil {
		return models.QuoteItem{}, invalidInput("product", "product is required")
	}

	var (
		quantity decimal.Decimal
		item     = models.QuoteItem{
			ProductID:    product.ID,
			ProductName:  product.Name,
			PricingModel: product.PricingModel,
		}
	)

	switch product.PricingModel {
	case enums.PricingModelPerUnit:
		if !m.Quantity.IsPositive() {
			return models.QuoteItem{}, invalidInput("quantity", "quantity must be greater than zero")
		}
		quantity = m.Quantity
	case enums.PricingModelPerSquareMeter:
		if m.Width == nil || m.Height == nil {
			return models.QuoteItem{}, invalidInput("dimensions", "width and height are required for area pricing")
		}
		if !m.Width.IsPositive() || !m.Height.IsPositive() {
			return models.QuoteItem{}, invalidInput("dimensions", "width and height must be greater than zero")
		}
		count := decimal.NewFromInt(1)
		if m.ItemCount != nil {
			count = *m.ItemCount
		}
		if !count.IsPositive() {
			return models.QuoteItem{}, invalidInput("itemCountForAreaCalc", "item count must be greater than zero")
		}
		quantity = m.Width.Mul(*m.Height).Mul(count)
		width, height := *m.Width, *m.Height
		item.Width = &width
		item.Height = &height
		item.ItemCountForAreaCalc = &count
	default:
		return models.QuoteItem{}, invalidInput("pricingModel", "unknown pricing model")
	}

	prices := c.UnitPrices(*product)
	cardTotal := quantity.Mul(prices.Card)

	item.Quantity = quantity
	item.UnitPrice = prices.Cash
	item.TotalPrice = quantity.Mul(prices.Cash)
	item.CardUnitPrice = &prices.Card
	item.CardTotalPrice = &cardTotal
	return item, nil
}

func invalidInput(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
