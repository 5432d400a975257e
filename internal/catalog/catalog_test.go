package catalog

import (
	"context"
	"testing"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogAPI struct {
	products   []models.Product
	categories []models.Category
	saved      []models.Product
	deleted    []string
}

func (s *stubCatalogAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), s.products...), nil
}

func (s *stubCatalogAPI) SaveProduct(ctx context.Context, product models.Product) (models.Product, error) {
	s.saved = append(s.saved, product)
	return product, nil
}

func (s *stubCatalogAPI) DeleteProduct(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCatalogAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), s.categories...), nil
}

func (s *stubCatalogAPI) SaveCategory(ctx context.Context, category models.Category) (models.Category, error) {
	if category.ID == "" {
		category.ID = "new"
	}
	return category, nil
}

func (s *stubCatalogAPI) DeleteCategory(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T, api *stubCatalogAPI) Service {
	t.Helper()
	svc, err := NewService(api)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresAPI(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestListProductsFiltersAndSorts(t *testing.T) {
	api := &stubCatalogAPI{products: []models.Product{
		{ID: "p1", Name: "lona", CategoryID: ptr("c1")},
		{ID: "p2", Name: "Adesivo", Description: "vinil", CategoryID: ptr("c1")},
		{ID: "p3", Name: "Cartão", CategoryID: ptr("c2")},
	}}
	svc := newTestService(t, api)

	all, err := svc.ListProducts(context.Background(), ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Adesivo", all[0].Name)

	byCategory, err := svc.ListProducts(context.Background(), ProductFilter{CategoryID: "c1"})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	bySearch, err := svc.ListProducts(context.Background(), ProductFilter{Search: "VINIL"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "p2", bySearch[0].ID)
}

func TestSaveProductValidation(t *testing.T) {
	api := &stubCatalogAPI{categories: []models.Category{{ID: "c1", Name: "Impressos"}}}
	svc := newTestService(t, api)
	ctx := context.Background()

	_, err := svc.SaveProduct(ctx, models.Product{Name: "  ", PricingModel: enums.PricingModelPerUnit})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.SaveProduct(ctx, models.Product{Name: "Lona", PricingModel: "kg"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.SaveProduct(ctx, models.Product{Name: "Lona", PricingModel: enums.PricingModelPerUnit, BasePrice: decimal.NewFromInt(-1)})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	negative := decimal.NewFromInt(-5)
	_, err = svc.SaveProduct(ctx, models.Product{Name: "Lona", PricingModel: enums.PricingModelPerUnit, CustomCardPrice: &negative})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))

	_, err = svc.SaveProduct(ctx, models.Product{Name: "Lona", PricingModel: enums.PricingModelPerUnit, CategoryID: ptr("missing")})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
	assert.Empty(t, api.saved)
}

func TestSaveProductNormalizes(t *testing.T) {
	api := &stubCatalogAPI{categories: []models.Category{{ID: "c1", Name: "Impressos"}}}
	svc := newTestService(t, api)

	saved, err := svc.SaveProduct(context.Background(), models.Product{
		Name:         " Lona ",
		PricingModel: enums.PricingModelPerSquareMeter,
		BasePrice:    decimal.NewFromInt(40),
		CategoryID:   ptr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Lona", saved.Name)
	assert.Nil(t, saved.CategoryID)
	require.NotNil(t, saved.Unit)
	assert.Equal(t, "m²", *saved.Unit)
}

func TestSaveCategoryRejectsDuplicateName(t *testing.T) {
	api := &stubCatalogAPI{categories: []models.Category{{ID: "c1", Name: "Impressos"}}}
	svc := newTestService(t, api)

	_, err := svc.SaveCategory(context.Background(), models.Category{Name: "impressos"})
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))

	renamed, err := svc.SaveCategory(context.Background(), models.Category{ID: "c1", Name: "Impressos"})
	require.NoError(t, err)
	assert.Equal(t, "c1", renamed.ID)
}

func TestDeleteCategoryInUse(t *testing.T) {
	api := &stubCatalogAPI{products: []models.Product{{ID: "p1", Name: "Lona", CategoryID: ptr("c1")}}}
	svc := newTestService(t, api)

	err := svc.DeleteCategory(context.Background(), "c1")
	require.Error(t, err)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeConflict))

	require.NoError(t, svc.DeleteCategory(context.Background(), "c2"))
	assert.Equal(t, []string{"c2"}, api.deleted)
}
