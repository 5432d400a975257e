package backend

import (
	"context"

	"github.com/SttarkMax/sistema/pkg/models"
)

const customersPath = "/customers"

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return list[models.Customer](ctx, c, customersPath)
}

func (c *Client) GetCustomer(ctx context.Context, id string) (models.Customer, error) {
	return get[models.Customer](ctx, c, customersPath, id)
}

func (c *Client) SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	return save(ctx, c, customersPath, customer.ID, customer)
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.remove(ctx, customersPath, id)
}
