package quotes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SttarkMax/sistema/internal/customers"
	"github.com/SttarkMax/sistema/internal/pricing"
	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/shopspring/decimal"
)

type quotesAPI interface {
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	GetQuote(ctx context.Context, id string) (models.Quote, error)
	SaveQuote(ctx context.Context, quote models.Quote) (models.Quote, error)
}

type creditLookup interface {
	Credit(ctx context.Context, customerID, excludeQuoteID string) (*customers.CreditSummary, error)
}

type numberer interface {
	Next(ctx context.Context) (string, error)
}

// Author is the logged-in seller creating a quote and the company they sell for.
type Author struct {
	User    models.LoggedInUser
	Company *models.CompanyInfo
}

// Input is the editable body of a quote.
type Input struct {
	CustomerID            *string               `json:"customerId,omitempty"`
	ClientName            string                `json:"clientName" validate:"required"`
	ClientContact         *string               `json:"clientContact,omitempty"`
	Lines                 []pricing.LineRequest `json:"lines" validate:"required,min=1,dive"`
	DiscountType          enums.DiscountType    `json:"discountType"`
	DiscountValue         decimal.Decimal       `json:"discountValue"`
	DownPaymentApplied    *decimal.Decimal      `json:"downPaymentApplied,omitempty"`
	SelectedPaymentMethod *string               `json:"selectedPaymentMethod,omitempty"`
	PaymentDate           *string               `json:"paymentDate,omitempty"`
	DeliveryDeadline      *string               `json:"deliveryDeadline,omitempty"`
	Notes                 *string               `json:"notes,omitempty"`
}

// Filter narrows a quote listing. Empty fields match everything.
type Filter struct {
	Status      enums.QuoteStatus
	CustomerID  string
	Salesperson string
}

func (f Filter) matches(q models.Quote) bool {
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.CustomerID != "" && (q.CustomerID == nil || *q.CustomerID != f.CustomerID) {
		return false
	}
	if f.Salesperson != "" && q.SalespersonUsername != f.Salesperson {
		return false
	}
	return true
}

// Service runs the quote lifecycle on top of the backend.
type Service interface {
	List(ctx context.Context, filter Filter) ([]models.Quote, error)
	Get(ctx context.Context, id string) (*models.Quote, error)
	Create(ctx context.Context, author Author, input Input) (*models.Quote, error)
	Update(ctx context.Context, id string, input Input) (*models.Quote, error)
	Transition(ctx context.Context, id string, to enums.QuoteStatus) (*models.Quote, error)
}

type service struct {
	api     quotesAPI
	pricing pricing.Service
	credit  creditLookup
	numbers numberer
	clock   func() time.Time
}

// NewService builds the quotes service. A nil clock defaults to time.Now.
func NewService(api quotesAPI, pricer pricing.Service, credit creditLookup, numbers numberer, clock func() time.Time) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("quotes api required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if credit == nil {
		return nil, fmt.Errorf("credit lookup required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("quote numberer required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{api: api, pricing: pricer, credit: credit, numbers: numbers, clock: clock}, nil
}

// List returns matching quotes, newest first.
func (s *service) List(ctx context.Context, filter Filter) ([]models.Quote, error) {
	all, err := s.api.ListQuotes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Quote, 0, len(all))
	for _, q := range all {
		if filter.matches(q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Quote, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalidInput("id", "quote id is required")
	}
	q, err := s.api.GetQuote(ctx, id)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create prices a new draft, freezes the company snapshot and reserves its number.
func (s *service) Create(ctx context.Context, author Author, input Input) (*models.Quote, error) {
	if author.User.Username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "salesperson required")
	}

	q := models.Quote{Status: enums.QuoteStatusDraft}
	if err := s.apply(ctx, &q, input); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}
	q.QuoteNumber = number
	q.CreatedAt = s.clock().UTC()
	q.SalespersonUsername = author.User.Username
	if author.User.FullName != nil {
		name := *author.User.FullName
		q.SalespersonFullName = &name
	}
	if author.Company != nil {
		q.CompanyInfoSnapshot = author.Company.Snapshot()
	}

	saved, err := s.api.SaveQuote(ctx, q)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update reprices an editable quote. Number, snapshot, author and status are kept.
func (s *service) Update(ctx context.Context, id string, input Input) (*models.Quote, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.Status.IsEditable() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "Orçamento "+q.Status.Label()+" não pode ser alterado").
			WithDetails(map[string]any{"status": q.Status})
	}
	if err := s.apply(ctx, q, input); err != nil {
		return nil, err
	}
	saved, err := s.api.SaveQuote(ctx, *q)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Transition moves a quote along its lifecycle. Conversion into an order goes
// through the orders service, which creates the order first.
func (s *service) Transition(ctx context.Context, id string, to enums.QuoteStatus) (*models.Quote, error) {
	if to == enums.QuoteStatusConvertedToOrder {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "convert the quote into an order instead").
			WithDetails(map[string]any{"field": "status"})
	}
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckTransition(q.Status, to); err != nil {
		return nil, err
	}
	q.Status = to
	saved, err := s.api.SaveQuote(ctx, *q)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// apply prices input onto q after checking the down payment against the
// customer's credit.
func (s *service) apply(ctx context.Context, q *models.Quote, input Input) error {
	clientName := strings.TrimSpace(input.ClientName)
	if clientName == "" {
		return invalidInput("clientName", "client name is required")
	}
	if len(input.Lines) == 0 {
		return invalidInput("lines", "a quote needs at least one item")
	}

	downPayment := decimal.Zero
	if input.DownPaymentApplied != nil {
		downPayment = *input.DownPaymentApplied
	}
	if downPayment.IsNegative() {
		return invalidInput("downPaymentApplied", "down payment must not be negative")
	}
	if downPayment.IsPositive() {
		if input.CustomerID == nil || strings.TrimSpace(*input.CustomerID) == "" {
			return invalidInput("customerId", "a down payment requires a registered customer")
		}
		summary, err := s.credit.Credit(ctx, *input.CustomerID, q.ID)
		if err != nil {
			return err
		}
		if downPayment.GreaterThan(summary.Available) {
			return pkgerrors.New(pkgerrors.CodeValidation, "Sinal maior que o crédito disponível do cliente").
				WithDetails(map[string]any{
					"field":     "downPaymentApplied",
					"available": summary.Available,
				})
		}
	}

	preview, err := s.pricing.Preview(ctx, pricing.PreviewRequest{
		Lines:              input.Lines,
		DiscountType:       input.DiscountType,
		DiscountValue:      input.DiscountValue,
		DownPaymentApplied: downPayment,
	})
	if err != nil {
		return err
	}

	q.CustomerID = input.CustomerID
	q.ClientName = clientName
	q.ClientContact = input.ClientContact
	q.Items = preview.Items
	q.DiscountType = input.DiscountType
	if q.DiscountType == "" {
		q.DiscountType = enums.DiscountTypeNone
	}
	q.DiscountValue = input.DiscountValue
	if downPayment.IsPositive() {
		q.DownPaymentApplied = &downPayment
	} else {
		q.DownPaymentApplied = nil
	}
	q.SelectedPaymentMethod = input.SelectedPaymentMethod
	q.PaymentDate = input.PaymentDate
	q.DeliveryDeadline = input.DeliveryDeadline
	q.Notes = input.Notes
	preview.Totals.Apply(q)
	return nil
}

func invalidInput(field, message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message).WithDetails(map[string]any{"field": field})
}
