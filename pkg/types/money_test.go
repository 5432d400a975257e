package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5.5", "R$ 5,50"},
		{"999.99", "R$ 999,99"},
		{"1234.56", "R$ 1.234,56"},
		{"1000000", "R$ 1.000.000,00"},
		{"-250.1", "-R$ 250,10"},
		{"10.005", "R$ 10,01"},
	}
	for _, tt := range tests {
		got := FormatBRL(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Fatalf("FormatBRL(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	out, err := decimal.RequireFromString("12.50").MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "12.5" {
		t.Fatalf("expected bare number, got %s", out)
	}
}
