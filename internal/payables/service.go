package payables

import (
	"context"
	"fmt"
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
)

type payablesAPI interface {
	ListAccountsPayable(ctx context.Context) ([]models.AccountsPayableEntry, error)
	SaveAccountsPayable(ctx context.Context, entry models.AccountsPayableEntry) (*models.AccountsPayableEntry, error)
	CreateAccountsPayableSeries(ctx context.Context, base models.AccountsPayableEntry, installments int, frequency enums.InstallmentFrequency) ([]models.AccountsPayableEntry, error)
	DeleteAccountsPayableSeries(ctx context.Context, seriesID string) error
	DeleteAccountsPayable(ctx context.Context, id string) error
	ToggleAccountsPayablePaid(ctx context.Context, id string) (*models.AccountsPayableEntry, error)
}

// Service manages accounts payable through the backend.
type Service interface {
	List(ctx context.Context) (*Book, error)
	Save(ctx context.Context, entry models.AccountsPayableEntry) (*models.AccountsPayableEntry, error)
	PreviewSeries(req SeriesRequest) ([]models.AccountsPayableEntry, error)
	CreateSeries(ctx context.Context, req SeriesRequest) ([]models.AccountsPayableEntry, error)
	DeleteSeries(ctx context.Context, seriesID string) (*Book, error)
	DeleteEntry(ctx context.Context, id string) (*Book, error)
	TogglePaid(ctx context.Context, id string) (*models.AccountsPayableEntry, error)
}

type service struct {
	api   payablesAPI
	clock func() time.Time
}

// NewService builds the payables service. A nil clock defaults to time.Now.
func NewService(api payablesAPI, clock func() time.Time) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("payables api required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{api: api, clock: clock}, nil
}

func (s *service) List(ctx context.Context) (*Book, error) {
	entries, err := s.api.ListAccountsPayable(ctx)
	if err != nil {
		return nil, err
	}
	return NewBook(entries), nil
}

func (s *service) Save(ctx context.Context, entry models.AccountsPayableEntry) (*models.AccountsPayableEntry, error) {
	if entry.Name == "" {
		return nil, invalidInput("name", "entry name is required")
	}
	if entry.Amount.IsNegative() {
		return nil, invalidInput("amount", "amount must not be negative")
	}
	if entry.DueDate.IsZero() {
		return nil, invalidInput("dueDate", "due date is required")
	}
	if entry.ID == "" && entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock().UTC()
	}
	return s.api.SaveAccountsPayable(ctx, entry)
}

// PreviewSeries generates the installments locally without persisting them.
func (s *service) PreviewSeries(req SeriesRequest) ([]models.AccountsPayableEntry, error) {
	return GenerateSeries(req.BaseEntry, req.Installments, req.Frequency, s.clock().UTC())
}

func (s *service) CreateSeries(ctx context.Context, req SeriesRequest) ([]models.AccountsPayableEntry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.api.CreateAccountsPayableSeries(ctx, req.BaseEntry, req.Installments, req.Frequency)
}

// DeleteSeries removes every installment of a series. The returned book only
// changes once the backend confirms; on failure nothing is removed.
func (s *service) DeleteSeries(ctx context.Context, seriesID string) (*Book, error) {
	book, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(book.Series(seriesID)) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "installment series not found")
	}
	if err := s.api.DeleteAccountsPayableSeries(ctx, seriesID); err != nil {
		return nil, err
	}
	book.RemoveSeries(seriesID)
	return book, nil
}

// DeleteEntry removes one entry; remaining installments keep their numbering.
func (s *service) DeleteEntry(ctx context.Context, id string) (*Book, error) {
	book, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := book.Get(id); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "accounts payable entry not found")
	}
	if err := s.api.DeleteAccountsPayable(ctx, id); err != nil {
		return nil, err
	}
	book.Remove(id)
	return book, nil
}

func (s *service) TogglePaid(ctx context.Context, id string) (*models.AccountsPayableEntry, error) {
	if id == "" {
		return nil, invalidInput("id", "entry id is required")
	}
	return s.api.ToggleAccountsPayablePaid(ctx, id)
}
