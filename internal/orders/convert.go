package orders

import (
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/models"
)

// Details are the order fields a seller fills in when converting a quote.
type Details struct {
	PaymentMethod string  `json:"paymentMethod"`
	PaymentDate   *string `json:"paymentDate,omitempty"`
	DeliveryDate  *string `json:"deliveryDate,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

// FromQuote builds the work order for an accepted quote. The order total is the
// quote's cash total, which already has the applied down payment netted out.
func FromQuote(q models.Quote, number string, details Details, now time.Time) (models.Order, error) {
	if q.Status != enums.QuoteStatusAccepted {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeStateConflict, "Somente orçamentos aceitos podem virar OS").
			WithDetails(map[string]any{"status": q.Status})
	}

	method := details.PaymentMethod
	if method == "" && q.SelectedPaymentMethod != nil {
		method = *q.SelectedPaymentMethod
	}
	paymentDate := details.PaymentDate
	if paymentDate == nil {
		paymentDate = q.PaymentDate
	}
	deliveryDate := details.DeliveryDate
	if deliveryDate == nil {
		deliveryDate = q.DeliveryDeadline
	}
	notes := details.Notes
	if notes == nil {
		notes = q.Notes
	}

	items := make([]models.QuoteItem, len(q.Items))
	copy(items, q.Items)

	quoteID := q.ID
	return models.Order{
		OrderNumber:   number,
		QuoteID:       &quoteID,
		CustomerID:    q.CustomerID,
		ClientName:    q.ClientName,
		Items:         items,
		TotalAmount:   q.TotalCash,
		PaymentMethod: method,
		PaymentDate:   paymentDate,
		DeliveryDate:  deliveryDate,
		Status:        enums.OrderStatusPending,
		CreatedAt:     now,
		Notes:         notes,
	}, nil
}

var orderTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPending:    {enums.OrderStatusInProgress, enums.OrderStatusCancelled},
	enums.OrderStatusInProgress: {enums.OrderStatusCompleted, enums.OrderStatusCancelled},
	enums.OrderStatusCompleted:  {enums.OrderStatusDelivered},
}

// CanAdvance reports whether an order may move between production statuses.
func CanAdvance(from, to enums.OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
