package enums

import "fmt"

// DocumentType is the Brazilian tax document kind of a customer.
type DocumentType string

const (
	DocumentTypeCPF  DocumentType = "CPF"
	DocumentTypeCNPJ DocumentType = "CNPJ"
	DocumentTypeNone DocumentType = "N/A"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeCPF,
	DocumentTypeCNPJ,
	DocumentTypeNone,
}

func (d DocumentType) String() string {
	return string(d)
}

func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
