package customers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type customersAPI interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	SaveCustomer(ctx context.Context, customer models.Customer) (models.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
	ListQuotes(ctx context.Context) ([]models.Quote, error)
}

// DownPaymentInput registers money a customer paid ahead of a quote.
type DownPaymentInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
}

// Service manages customers and their prepaid credit.
type Service interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (*models.Customer, error)
	Save(ctx context.Context, customer models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id string) error
	AddDownPayment(ctx context.Context, customerID string, input DownPaymentInput) (*models.Customer, error)
	Credit(ctx context.Context, customerID, excludeQuoteID string) (*CreditSummary, error)
}

type service struct {
	api   customersAPI
	clock func() time.Time
}

// NewService builds the customers service. A nil clock defaults to time.Now.
func NewService(api customersAPI, clock func() time.Time) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("customers api required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{api: api, clock: clock}, nil
}

func (s *service) List(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.api.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(customers, func(i, j int) bool {
		return strings.ToLower(customers[i].Name) < strings.ToLower(customers[j].Name)
	})
	return customers, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Customer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidInput("id", "customer id is required")
	}
	customer, err := s.api.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Save creates or updates a customer. Down payments are append-only, so an
// update keeps the stored entries whatever the caller sent.
func (s *service) Save(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return nil, invalidInput("name", "customer name is required")
	}
	if customer.DocumentType == "" {
		customer.DocumentType = enums.DocumentTypeNone
	}
	if !customer.DocumentType.IsValid() {
		return nil, invalidInput("documentType", "unknown document type")
	}
	if customer.DocumentType == enums.DocumentTypeNone {
		customer.DocumentNumber = nil
	}

	if customer.ID != "" {
		stored, err := s.api.GetCustomer(ctx, customer.ID)
		if err != nil {
			return nil, err
		}
		customer.DownPayments = stored.DownPayments
	} else {
		customer.DownPayments = nil
	}
	if customer.DownPayments == nil {
		customer.DownPayments = []models.DownPaymentEntry{}
	}

	saved, err := s.api.SaveCustomer(ctx, customer)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalidInput("id", "customer id is required")
	}
	return s.api.DeleteCustomer(ctx, id)
}

func (s *service) AddDownPayment(ctx context.Context, customerID string, input DownPaymentInput) (*models.Customer, error) {
	if !input.Amount.IsPositive() {
		return nil, invalidInput("amount", "down payment must be greater than zero")
	}
	date := s.clock()
	if strings.TrimSpace(input.Date) != "" {
		parsed, err := types.ParseDate(input.Date)
		if err != nil {
			return nil, invalidInput("date", err.Error())
		}
		date = parsed.Time
	}

	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	customer.DownPayments = append(customer.DownPayments, models.DownPaymentEntry{
		ID:          uuid.NewString(),
		Amount:      input.Amount,
		Date:        types.DateOf(date).String(),
		Description: input.Description,
	})

	saved, err := s.api.SaveCustomer(ctx, *customer)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (s *service) Credit(ctx context.Context, customerID, excludeQuoteID string) (*CreditSummary, error) {
	customer, err := s.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	quotes, err := s.api.ListQuotes(ctx)
	if err != nil {
		return nil, err
	}
	summary := AvailableCredit(*customer, quotes, excludeQuoteID)
	return &summary, nil
}

func invalidInput(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
