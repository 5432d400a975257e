package pricing

import (
	"context"
	"fmt"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

type catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
}

// LineRequest asks for one line to be priced by product id.
type LineRequest struct {
	ProductID            string           `json:"productId" validate:"required"`
	Quantity             decimal.Decimal  `json:"quantity"`
	Width                *decimal.Decimal `json:"width,omitempty"`
	Height               *decimal.Decimal `json:"height,omitempty"`
	ItemCountForAreaCalc *decimal.Decimal `json:"itemCountForAreaCalc,omitempty"`
}

func (r LineRequest) measure() Measure {
	return Measure{
		Quantity:  r.Quantity,
		Width:     r.Width,
		Height:    r.Height,
		ItemCount: r.ItemCountForAreaCalc,
	}
}

// PreviewRequest prices a full set of lines and the quote-level adjustments.
type PreviewRequest struct {
	Lines              []LineRequest      `json:"lines" validate:"dive"`
	DiscountType       enums.DiscountType `json:"discountType"`
	DiscountValue      decimal.Decimal    `json:"discountValue"`
	DownPaymentApplied decimal.Decimal    `json:"downPaymentApplied"`
}

// Preview is a priced, unsaved quote body.
type Preview struct {
	Items []models.QuoteItem `json:"items"`
	Totals
}

// Service prices lines against the live catalog.
type Service interface {
	PriceLine(ctx context.Context, req LineRequest) (*models.QuoteItem, error)
	Preview(ctx context.Context, req PreviewRequest) (*Preview, error)
	Calculator() Calculator
}

type service struct {
	catalog    catalog
	calculator Calculator
}

// NewService builds a pricing service backed by the product catalog.
func NewService(catalog catalog, calculator Calculator) (Service, error) {
	if catalog == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	return &service{catalog: catalog, calculator: calculator}, nil
}

func (s *service) Calculator() Calculator {
	return s.calculator
}

func (s *service) PriceLine(ctx context.Context, req LineRequest) (*models.QuoteItem, error) {
	products, err := s.index(ctx)
	if err != nil {
		return nil, err
	}
	item, err := s.priceWith(products, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) Preview(ctx context.Context, req PreviewRequest) (*Preview, error) {
	products, err := s.index(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.QuoteItem, 0, len(req.Lines))
	for i, line := range req.Lines {
		item, err := s.priceWith(products, line)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil {
				return nil, pkgerrors.New(typed.Code(), fmt.Sprintf("line %d: %s", i+1, typed.Message())).WithDetails(typed.Details())
			}
			return nil, err
		}
		items = append(items, item)
	}

	totals, err := ComputeQuoteTotals(items, req.DiscountType, req.DiscountValue, req.DownPaymentApplied)
	if err != nil {
		return nil, err
	}
	return &Preview{Items: items, Totals: totals}, nil
}

func (s *service) index(ctx context.Context) (map[string]*models.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.Product, len(products))
	for i := range products {
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

func (s *service) priceWith(products map[string]*models.Product, req LineRequest) (models.QuoteItem, error) {
	product, ok := products[req.ProductID]
	if !ok {
		return models.QuoteItem{}, invalidInput("productId", "product not found")
	}
	return s.calculator.LineTotal(product, req.measure())
}
