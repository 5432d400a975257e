package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend exchanges money as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// FormatBRL renders an amount the pt-BR way: R$ 1.234,56.
func FormatBRL(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	parts := strings.SplitN(raw, ".", 2)
	result := "R$ " + groupThousands(parts[0]) + "," + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
