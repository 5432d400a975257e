package backend

import (
	"context"

	"github.com/SttarkMax/sistema/pkg/models"
)

const (
	suppliersPath       = "/suppliers"
	debtsPath           = suppliersPath + "/debts"
	supplierCreditsPath = suppliersPath + "/supplier-credits"
	cashflowPath        = "/cashflow"
)

func (c *Client) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return list[models.Supplier](ctx, c, suppliersPath)
}

func (c *Client) SaveSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	return save(ctx, c, suppliersPath, supplier.ID, supplier)
}

func (c *Client) DeleteSupplier(ctx context.Context, id string) error {
	return c.remove(ctx, suppliersPath, id)
}

func (c *Client) ListDebts(ctx context.Context) ([]models.Debt, error) {
	return list[models.Debt](ctx, c, debtsPath)
}

func (c *Client) SaveDebt(ctx context.Context, debt models.Debt) (models.Debt, error) {
	return save(ctx, c, debtsPath, debt.ID, debt)
}

func (c *Client) DeleteDebt(ctx context.Context, id string) error {
	return c.remove(ctx, debtsPath, id)
}

func (c *Client) ListSupplierCredits(ctx context.Context) ([]models.SupplierCredit, error) {
	return list[models.SupplierCredit](ctx, c, supplierCreditsPath)
}

func (c *Client) SaveSupplierCredit(ctx context.Context, credit models.SupplierCredit) (models.SupplierCredit, error) {
	return save(ctx, c, supplierCreditsPath, credit.ID, credit)
}

func (c *Client) DeleteSupplierCredit(ctx context.Context, id string) error {
	return c.remove(ctx, supplierCreditsPath, id)
}

func (c *Client) ListCashFlow(ctx context.Context) ([]models.CashFlowEntry, error) {
	return list[models.CashFlowEntry](ctx, c, cashflowPath)
}

func (c *Client) SaveCashFlow(ctx context.Context, entry models.CashFlowEntry) (models.CashFlowEntry, error) {
	return save(ctx, c, cashflowPath, entry.ID, entry)
}

func (c *Client) DeleteCashFlow(ctx context.Context, id string) error {
	return c.remove(ctx, cashflowPath, id)
}
