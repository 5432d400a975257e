package quotes

import (
	"github.com/SttarkMax/sistema/pkg/enums"
	pkgerrors "github.com/SttarkMax/sistema/pkg/errors"
	"github.com/SttarkMax/sistema/pkg/types"
	"github.com/shopspring/decimal"
)

var transitions = map[enums.QuoteStatus][]enums.QuoteStatus{
	enums.QuoteStatusDraft: {
		enums.QuoteStatusSent,
		enums.QuoteStatusAccepted,
		enums.QuoteStatusRejected,
		enums.QuoteStatusCancelled,
	},
	enums.QuoteStatusSent: {
		enums.QuoteStatusAccepted,
		enums.QuoteStatusRejected,
		enums.QuoteStatusCancelled,
	},
	enums.QuoteStatusAccepted: {
		enums.QuoteStatusConvertedToOrder,
		enums.QuoteStatusCancelled,
	},
}

// CanTransition reports whether a quote may move from one status to another.
// Rejected, converted and cancelled quotes are final.
func CanTransition(from, to enums.QuoteStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses lists the statuses reachable from status.
func NextStatuses(status enums.QuoteStatus) []enums.QuoteStatus {
	next := transitions[status]
	out := make([]enums.QuoteStatus, len(next))
	copy(out, next)
	return out
}

// CheckTransition returns a state conflict when the move is not allowed.
func CheckTransition(from, to enums.QuoteStatus) error {
	if !to.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown quote status").
			WithDetails(map[string]any{"field": "status"})
	}
	if !CanTransition(from, to) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "Orçamento "+from.Label()+" não pode passar para "+to.Label()).
			WithDetails(map[string]any{"from": from, "to": to})
	}
	return nil
}

// TranslateStatus returns the pt-BR label shown for status.
func TranslateStatus(status enums.QuoteStatus) string {
	return status.Label()
}

// FormatCurrency renders an amount as Brazilian reais.
func FormatCurrency(amount decimal.Decimal) string {
	return types.FormatBRL(amount)
}
