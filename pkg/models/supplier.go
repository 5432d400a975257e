package models

import "github.com/shopspring/decimal"

type Supplier struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name" validate:"required"`
	CNPJ    *string `json:"cnpj,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// Debt is an amount owed to a supplier.
type Debt struct {
	ID          string          `json:"id,omitempty"`
	SupplierID  string          `json:"supplierId" validate:"required"`
	Description *string         `json:"description,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	DateAdded   string          `json:"dateAdded"`
}

// SupplierCredit is a payment made to a supplier, reducing what is owed.
type SupplierCredit struct {
	ID          string          `json:"id,omitempty"`
	SupplierID  string          `json:"supplierId" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description *string         `json:"description,omitempty"`
}
