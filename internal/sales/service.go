package sales

import (
	"context"
	"fmt"

	"github.com/SttarkMax/sistema/pkg/models"
	"github.com/SttarkMax/sistema/pkg/types"
)

type salesAPI interface {
	ListQuotes(ctx context.Context) ([]models.Quote, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Service builds the per-user sales report.
type Service interface {
	Report(ctx context.Context, rng types.DateRange) ([]Performance, error)
}

type service struct {
	api salesAPI
}

func NewService(api salesAPI) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("sales api required")
	}
	return &service{api: api}, nil
}

func (s *service) Report(ctx context.Context, rng types.DateRange) ([]Performance, error) {
	quotes, err := s.api.ListQuotes(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return Compute(quotes, users, rng), nil
}
