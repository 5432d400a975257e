package enums

import "fmt"

// PricingModel decides how a product line is priced.
type PricingModel string

const (
	// PricingModelPerUnit prices by the product's declared unit (a card, a pack of 500).
	PricingModelPerUnit PricingModel = "unidade"
	// PricingModelPerSquareMeter prices by area.
	PricingModelPerSquareMeter PricingModel = "m2"
)

var validPricingModels = []PricingModel{
	PricingModelPerUnit,
	PricingModelPerSquareMeter,
}

func (p PricingModel) String() string {
	return string(p)
}

func (p PricingModel) IsValid() bool {
	for _, candidate := range validPricingModels {
		if candidate == p {
			return true
		}
	}
	return false
}

func ParsePricingModel(value string) (PricingModel, error) {
	for _, candidate := range validPricingModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing model %q", value)
}
