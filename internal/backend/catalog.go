package backend

import (
	"context"

	"github.com/SttarkMax/sistema/pkg/models"
)

const (
	productsPath   = "/products"
	categoriesPath = "/categories"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	return list[models.Product](ctx, c, productsPath)
}

func (c *Client) SaveProduct(ctx context.Context, product models.Product) (models.Product, error) {
	return save(ctx, c, productsPath, product.ID, product)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.remove(ctx, productsPath, id)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	return list[models.Category](ctx, c, categoriesPath)
}

func (c *Client) SaveCategory(ctx context.Context, category models.Category) (models.Category, error) {
	return save(ctx, c, categoriesPath, category.ID, category)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.remove(ctx, categoriesPath, id)
}
