package backend

import (
	"context"
	"net/http"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/SttarkMax/sistema/pkg/models"
)

const payablesPath = "/accounts-payable"

type seriesRequest struct {
	BaseEntry    models.AccountsPayableEntry `json:"baseEntry"`
	Installments int                         `json:"installments"`
	Frequency    enums.InstallmentFrequency  `json:"frequency"`
}

func (c *Client) ListAccountsPayable(ctx context.Context) ([]models.AccountsPayableEntry, error) {
	return list[models.AccountsPayableEntry](ctx, c, payablesPath)
}

func (c *Client) SaveAccountsPayable(ctx context.Context, entry models.AccountsPayableEntry) (*models.AccountsPayableEntry, error) {
	out, err := save(ctx, c, payablesPath, entry.ID, entry)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateAccountsPayableSeries asks the backend to persist an installment series and
// returns the stored entries.
func (c *Client) CreateAccountsPayableSeries(ctx context.Context, base models.AccountsPayableEntry, installments int, frequency enums.InstallmentFrequency) ([]models.AccountsPayableEntry, error) {
	var out []models.AccountsPayableEntry
	req := seriesRequest{BaseEntry: base, Installments: installments, Frequency: frequency}
	if err := c.do(ctx, http.MethodPost, payablesPath+"/series", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteAccountsPayableSeries(ctx context.Context, seriesID string) error {
	return c.do(ctx, http.MethodDelete, payablesPath+"/series/"+escapeID(seriesID), nil, nil)
}

func (c *Client) DeleteAccountsPayable(ctx context.Context, id string) error {
	return c.remove(ctx, payablesPath, id)
}

func (c *Client) ToggleAccountsPayablePaid(ctx context.Context, id string) (*models.AccountsPayableEntry, error) {
	var out models.AccountsPayableEntry
	if err := c.do(ctx, http.MethodPost, resourcePath(payablesPath, id)+"/toggle-paid", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
