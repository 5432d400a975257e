package enums

import "fmt"

// CashFlowType separates money coming in from money going out.
type CashFlowType string

const (
	CashFlowTypeIncome  CashFlowType = "income"
	CashFlowTypeExpense CashFlowType = "expense"
)

var validCashFlowTypes = []CashFlowType{
	CashFlowTypeIncome,
	CashFlowTypeExpense,
}

func (c CashFlowType) String() string {
	return string(c)
}

func (c CashFlowType) IsValid() bool {
	for _, candidate := range validCashFlowTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

func ParseCashFlowType(value string) (CashFlowType, error) {
	for _, candidate := range validCashFlowTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cash flow type %q", value)
}
