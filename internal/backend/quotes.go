package backend

import (
	"context"

	"github.com/SttarkMax/sistema/pkg/models"
)

const (
	quotesPath = "/quotes"
	ordersPath = "/orders"
)

func (c *Client) ListQuotes(ctx context.Context) ([]models.Quote, error) {
	return list[models.Quote](ctx, c, quotesPath)
}

func (c *Client) GetQuote(ctx context.Context, id string) (models.Quote, error) {
	return get[models.Quote](ctx, c, quotesPath, id)
}

func (c *Client) SaveQuote(ctx context.Context, quote models.Quote) (models.Quote, error) {
	return save(ctx, c, quotesPath, quote.ID, quote)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	return list[models.Order](ctx, c, ordersPath)
}

func (c *Client) GetOrder(ctx context.Context, id string) (models.Order, error) {
	return get[models.Order](ctx, c, ordersPath, id)
}

func (c *Client) SaveOrder(ctx context.Context, order models.Order) (models.Order, error) {
	return save(ctx, c, ordersPath, order.ID, order)
}
