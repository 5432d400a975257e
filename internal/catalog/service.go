package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

type catalogAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	SaveProduct(ctx context.Context, product models.Product) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, category models.Category) (models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ProductFilter narrows the product listing. Empty fields match everything.
type ProductFilter struct {
	CategoryID string
	Search     string
}

func (f ProductFilter) matches(p models.Product) bool {
	if f.CategoryID != "" && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q)
	}
	return true
}

// Service manages products and categories.
type Service interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	SaveProduct(ctx context.Context, product models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, category models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type service struct {
	api catalogAPI
}

func NewService(api catalogAPI) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("catalog api required")
	}
	return &service{api: api}, nil
}

func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if filter.matches(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// SaveProduct validates prices and the category reference before handing the
// product to the backend.
func (s *service) SaveProduct(ctx context.Context, product models.Product) (*models.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return nil, invalidInput("name", "product name is required")
	}
	if !product.PricingModel.IsValid() {
		return nil, invalidInput("pricingModel", "pricing model must be unidade or m2")
	}
	if product.BasePrice.IsNegative() {
		return nil, invalidInput("basePrice", "base price must not be negative")
	}
	for field, value := range map[string]*decimal.Decimal{
		"customCashPrice": product.CustomCashPrice,
		"customCardPrice": product.CustomCardPrice,
		"supplierCost":    product.SupplierCost,
	} {
		if value != nil && value.IsNegative() {
			return nil, invalidInput(field, "price must not be negative")
		}
	}
	if product.PricingModel == enums.PricingModelPerSquareMeter {
		unit := "m²"
		product.Unit = &unit
	}

	if product.CategoryID != nil && strings.TrimSpace(*product.CategoryID) == "" {
		product.CategoryID = nil
	}
	if product.CategoryID != nil {
		categories, err := s.api.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		if !hasCategory(categories, *product.CategoryID) {
			return nil, invalidInput("categoryId", "category does not exist")
		}
	}

	saved, err := s.api.SaveProduct(ctx, product)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "product id is required")
	}
	return s.api.DeleteProduct(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

// SaveCategory rejects a name already used by another category, ignoring case.
func (s *service) SaveCategory(ctx context.Context, category models.Category) (*models.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, invalidInput("name", "category name is required")
	}
	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, existing := range categories {
		if existing.ID != category.ID && strings.EqualFold(existing.Name, category.Name) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "Já existe uma categoria com este nome.").
				WithDetails(map[string]string{"field": "name"})
		}
	}
	saved, err := s.api.SaveCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteCategory refuses while products still reference the category.
func (s *service) DeleteCategory(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "category id is required")
	}
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return err
	}
	inUse := 0
	for _, p := range products {
		if p.CategoryID != nil && *p.CategoryID == id {
			inUse++
		}
	}
	if inUse > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "Categoria possui produtos vinculados.").
			WithDetails(map[string]int{"products": inUse})
	}
	return s.api.DeleteCategory(ctx, id)
}

func hasCategory(categories []models.Category, id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func invalidInput(field, msg string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, msg).WithDetails(map[string]string{"field": field})
}
