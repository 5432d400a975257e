package suppliers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
)

type suppliersAPI interface {
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	SaveSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error
	ListDebts(ctx context.Context) ([]models.Debt, error)
	SaveDebt(ctx context.Context, debt models.Debt) (models.Debt, error)
	DeleteDebt(ctx context.Context, id string) error
	ListSupplierCredits(ctx context.Context) ([]models.SupplierCredit, error)
	SaveSupplierCredit(ctx context.Context, credit models.SupplierCredit) (models.SupplierCredit, error)
	DeleteSupplierCredit(ctx context.Context, id string) error
}

// Service manages suppliers, what is owed to them and what was paid.
type Service interface {
	Save(ctx context.Context, supplier models.Supplier) (*models.Supplier, error)
	Delete(ctx context.Context, id string) error
	Balances(ctx context.Context) ([]Balance, error)
	Statement(ctx context.Context, supplierID string) (*Statement, error)
	AddDebt(ctx context.Context, debt models.Debt) (*models.Debt, error)
	DeleteDebt(ctx context.Context, id string) error
	AddCredit(ctx context.Context, credit models.SupplierCredit) (*models.SupplierCredit, error)
	DeleteCredit(ctx context.Context, id string) error
}

type service struct {
	api   suppliersAPI
	clock func() time.Time
}

// NewService builds the suppliers service. A nil clock defaults to time.Now.
func NewService(api suppliersAPI, clock func() time.Time) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("suppliers api required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{api: api, clock: clock}, nil
}

func (s *service) Save(ctx context.Context, supplier models.Supplier) (*models.Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if supplier.Name == "" {
		return nil, invalidInput("name", "supplier name is required")
	}
	saved, err := s.api.SaveSupplier(ctx, supplier)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "supplier id is required")
	}
	return s.api.DeleteSupplier(ctx, id)
}

func (s *service) Balances(ctx context.Context) ([]Balance, error) {
	suppliers, debts, credits, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return Balances(suppliers, debts, credits), nil
}

func (s *service) Statement(ctx context.Context, supplierID string) (*Statement, error) {
	suppliers, debts, credits, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var supplier *models.Supplier
	for i := range suppliers {
		if suppliers[i].ID == supplierID {
			supplier = &suppliers[i]
			break
		}
	}
	if supplier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Fornecedor não encontrado")
	}

	out := &Statement{Debts: []models.Debt{}, Credits: []models.SupplierCredit{}}
	for _, d := range debts {
		if d.SupplierID == supplierID {
			out.Debts = append(out.Debts, d)
		}
	}
	for _, c := range credits {
		if c.SupplierID == supplierID {
			out.Credits = append(out.Credits, c)
		}
	}
	sort.SliceStable(out.Debts, func(i, j int) bool { return out.Debts[i].DateAdded > out.Debts[j].DateAdded })
	sort.SliceStable(out.Credits, func(i, j int) bool { return out.Credits[i].Date > out.Credits[j].Date })

	out.Balance = Balances([]models.Supplier{*supplier}, out.Debts, out.Credits)[0]
	return out, nil
}

func (s *service) AddDebt(ctx context.Context, debt models.Debt) (*models.Debt, error) {
	if strings.TrimSpace(debt.SupplierID) == "" {
		return nil, invalidInput("supplierId", "supplier is required")
	}
	if !debt.TotalAmount.IsPositive() {
		return nil, invalidInput("totalAmount", "debt amount must be greater than zero")
	}
	date, err := s.dateOrToday(debt.DateAdded, "dateAdded")
	if err != nil {
		return nil, err
	}
	debt.DateAdded = date
	saved, err := s.api.SaveDebt(ctx, debt)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) DeleteDebt(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "debt id is required")
	}
	return s.api.DeleteDebt(ctx, id)
}

func (s *service) AddCredit(ctx context.Context, credit models.SupplierCredit) (*models.SupplierCredit, error) {
	if strings.TrimSpace(credit.SupplierID) == "" {
		return nil, invalidInput("supplierId", "supplier is required")
	}
	if !credit.Amount.IsPositive() {
		return nil, invalidInput("amount", "payment amount must be greater than zero")
	}
	date, err := s.dateOrToday(credit.Date, "date")
	if err != nil {
		return nil, err
	}
	credit.Date = date
	saved, err := s.api.SaveSupplierCredit(ctx, credit)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) DeleteCredit(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "payment id is required")
	}
	return s.api.DeleteSupplierCredit(ctx, id)
}

func (s *service) load(ctx context.Context) ([]models.Supplier, []models.Debt, []models.SupplierCredit, error) {
	suppliers, err := s.api.ListSuppliers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	debts, err := s.api.ListDebts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	credits, err := s.api.ListSupplierCredits(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return suppliers, debts, credits, nil
}

func (s *service) dateOrToday(value, field string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return types.DateOf(s.clock()).String(), nil
	}
	d, err := types.ParseDate(value)
	if err != nil {
		return "", invalidInput(field, err.Error())
	}
	return d.String(), nil
}

func invalidInput(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
