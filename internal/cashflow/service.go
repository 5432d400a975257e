package cashflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
)

type cashflowAPI interface {
	ListCashFlow(ctx context.Context) ([]models.CashFlowEntry, error)
	SaveCashFlow(ctx context.Context, entry models.CashFlowEntry) (models.CashFlowEntry, error)
	DeleteCashFlow(ctx context.Context, id string) error
	ListAccountsPayable(ctx context.Context) ([]models.AccountsPayableEntry, error)
}

// Service manages ledger movements and their summaries.
type Service interface {
	Save(ctx context.Context, entry models.CashFlowEntry) (*models.CashFlowEntry, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, rng types.DateRange, includePayables bool) (*Summary, error)
}

type service struct {
	api cashflowAPI
}

func NewService(api cashflowAPI) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("cashflow api required")
	}
	return &service{api: api}, nil
}

func (s *service) Save(ctx context.Context, entry models.CashFlowEntry) (*models.CashFlowEntry, error) {
	entry.Description = strings.TrimSpace(entry.Description)
	if entry.Description == "" {
		return nil, invalidInput("description", "description is required")
	}
	if !entry.Type.IsValid() {
		return nil, invalidInput("type", "type must be income or expense")
	}
	if entry.Amount.IsZero() {
		return nil, invalidInput("amount", "amount must not be zero")
	}
	if entry.Date.IsZero() {
		return nil, invalidInput("date", "date is required")
	}
	saved, err := s.api.SaveCashFlow(ctx, Normalize(entry))
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "entry id is required")
	}
	if strings.HasPrefix(id, "ap:") {
		return pkgerrors.New(pkgerrors.CodeConflict, "Lançamentos de contas a pagar são removidos pela tela de contas").
			WithDetails(map[string]any{"type": enums.CashFlowTypeExpense})
	}
	return s.api.DeleteCashFlow(ctx, id)
}

func (s *service) Summary(ctx context.Context, rng types.DateRange, includePayables bool) (*Summary, error) {
	entries, err := s.api.ListCashFlow(ctx)
	if err != nil {
		return nil, err
	}
	var payables []models.AccountsPayableEntry
	if includePayables {
		payables, err = s.api.ListAccountsPayable(ctx)
		if err != nil {
			return nil, err
		}
	}
	summary := Summarize(entries, payables, rng)
	return &summary, nil
}

func invalidInput(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
