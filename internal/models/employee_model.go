package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeSummary is one roster entry of a company.
type EmployeeSummary struct {
	ID       string `json:"id"`
	FullName string `json:"nome"`
	TaxID    string `json:"cpf"`
}

type Employee struct {
	ID            string          `json:"id"`
	FullName      string          `json:"nome"`
	TaxID         string          `json:"cpf"`
	BaseSalary    decimal.Decimal `json:"salarioBase"`
	AdmissionDate time.Time       `json:"admissao"`
}
