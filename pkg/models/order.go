package models

import (
	"time"

	"github.com/SttarkMax/sistema/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a work order, usually converted from an accepted quote.
type Order struct {
	ID            string            `json:"id,omitempty"`
	OrderNumber   string            `json:"orderNumber"`
	QuoteID       *string           `json:"quoteId,omitempty"`
	CustomerID    *string           `json:"customerId,omitempty"`
	ClientName    string            `json:"clientName"`
	Items         []QuoteItem       `json:"items"`
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	PaymentMethod string            `json:"paymentMethod"`
	PaymentDate   *string           `json:"paymentDate,omitempty"`
	DeliveryDate  *string           `json:"deliveryDate,omitempty"`
	Status        enums.OrderStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	Notes         *string           `json:"notes,omitempty"`
}
