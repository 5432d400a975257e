package models

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/shopspring/decimal"
)

// Category groups products in the catalog.
type Category struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
}

// Product is a sellable item. For PER_UNIT products BasePrice is the price of one
// Unit (which may itself be a package); for PER_SQUARE_METER it is the price per m².
type Product struct {
	ID              string             `json:"id,omitempty"`
	Name            string             `json:"name" validate:"required"`
	Description     string             `json:"description"`
	PricingModel    enums.PricingModel `json:"pricingModel" validate:"required"`
	BasePrice       decimal.Decimal    `json:"basePrice"`
	Unit            *string            `json:"unit,omitempty"`
	CustomCashPrice *decimal.Decimal   `json:"customCashPrice,omitempty"`
	CustomCardPrice *decimal.Decimal   `json:"customCardPrice,omitempty"`
	SupplierCost    *decimal.Decimal   `json:"supplierCost,omitempty"`
	CategoryID      *string            `json:"categoryId,omitempty"`
}

// ProductPrice is the pair of prices a product is sold at.
type ProductPrice struct {
	Cash decimal.Decimal `json:"cash"`
	Card decimal.Decimal `json:"card"`
}
