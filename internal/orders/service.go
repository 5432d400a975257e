package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SttarkMax/sistema/internal/quotes"
	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
)

type ordersAPI interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id string) (models.Order, error)
	SaveOrder(ctx context.Context, order models.Order) (models.Order, error)
	GetQuote(ctx context.Context, id string) (models.Quote, error)
	SaveQuote(ctx context.Context, quote models.Quote) (models.Quote, error)
}

type numberer interface {
	Next(ctx context.Context) (string, error)
}

// Service manages work orders.
type Service interface {
	List(ctx context.Context, status enums.OrderStatus) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	FromQuote(ctx context.Context, quoteID string, details Details) (*models.Order, error)
	Advance(ctx context.Context, id string, to enums.OrderStatus) (*models.Order, error)
}

type service struct {
	api     ordersAPI
	numbers numberer
	clock   func() time.Time
}

// NewService builds the orders service. A nil clock defaults to time.Now.
func NewService(api ordersAPI, numbers numberer, clock func() time.Time) (Service, error) {
	if api == nil {
		return nil, fmt.Errorf("orders api required")
	}
	if numbers == nil {
		return nil, fmt.Errorf("order numberer required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{api: api, numbers: numbers, clock: clock}, nil
}

// List returns orders, optionally of one status, newest first.
func (s *service) List(ctx context.Context, status enums.OrderStatus) ([]models.Order, error) {
	all, err := s.api.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(all))
	for _, o := range all {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.api.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FromQuote creates the order first and then marks the quote converted. When
// the quote update fails the order still exists and the error is returned.
func (s *service) FromQuote(ctx context.Context, quoteID string, details Details) (*models.Order, error) {
	if strings.TrimSpace(quoteID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id is required")
	}
	q, err := s.api.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if err := quotes.CheckTransition(q.Status, enums.QuoteStatusConvertedToOrder); err != nil {
		return nil, err
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, err
	}
	order, err := FromQuote(q, number, details, s.clock().UTC())
	if err != nil {
		return nil, err
	}

	saved, err := s.api.SaveOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	q.Status = enums.QuoteStatusConvertedToOrder
	if _, err := s.api.SaveQuote(ctx, q); err != nil {
		return &saved, pkgerrors.Wrap(pkgerrors.CodeOf(err), err, "order created but quote status not updated")
	}
	return &saved, nil
}

func (s *service) Advance(ctx context.Context, id string, to enums.OrderStatus) (*models.Order, error) {
	if !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"field": "status"})
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanAdvance(order.Status, to) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("order cannot move from %s to %s", order.Status, to))
	}
	order.Status = to
	saved, err := s.api.SaveOrder(ctx, *order)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
