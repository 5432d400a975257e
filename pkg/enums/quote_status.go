package enums

import "fmt"

// QuoteStatus tracks a quote through its lifecycle.
type QuoteStatus string

const (
	QuoteStatusDraft            QuoteStatus = "draft"
	QuoteStatusSent             QuoteStatus = "sent"
	QuoteStatusAccepted         QuoteStatus = "accepted"
	QuoteStatusRejected         QuoteStatus = "rejected"
	QuoteStatusConvertedToOrder QuoteStatus = "converted_to_order"
	QuoteStatusCancelled        QuoteStatus = "cancelled"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusDraft,
	QuoteStatusSent,
	QuoteStatusAccepted,
	QuoteStatusRejected,
	QuoteStatusConvertedToOrder,
	QuoteStatusCancelled,
}

var quoteStatusLabels = map[QuoteStatus]string{
	QuoteStatusDraft:            "Rascunho",
	QuoteStatusSent:             "Enviado",
	QuoteStatusAccepted:         "Aceito",
	QuoteStatusRejected:         "Rejeitado",
	QuoteStatusConvertedToOrder: "Convertido em OS",
	QuoteStatusCancelled:        "Cancelado",
}

func (s QuoteStatus) String() string {
	return string(s)
}

func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsEditable reports whether items and totals may still change.
func (s QuoteStatus) IsEditable() bool {
	return s == QuoteStatusDraft || s == QuoteStatusSent
}

// Label returns the pt-BR display label, or the raw value when unknown.
func (s QuoteStatus) Label() string {
	if label, ok := quoteStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
