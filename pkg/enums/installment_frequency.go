package enums

import "fmt"

// InstallmentFrequency spaces the due dates of an installment series.
type InstallmentFrequency string

const (
	InstallmentFrequencyWeekly  InstallmentFrequency = "weekly"
	InstallmentFrequencyMonthly InstallmentFrequency = "monthly"
)

var validInstallmentFrequencies = []InstallmentFrequency{
	InstallmentFrequencyWeekly,
	InstallmentFrequencyMonthly,
}

func (f InstallmentFrequency) String() string {
	return string(f)
}

func (f InstallmentFrequency) IsValid() bool {
	for _, candidate := range validInstallmentFrequencies {
		if candidate == f {
			return true
		}
	}
	return false
}

func ParseInstallmentFrequency(value string) (InstallmentFrequency, error) {
	for _, candidate := range validInstallmentFrequencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid installment frequency %q", value)
}
