package models

// Company is an empresa as seen by one tenant account of the payroll API.
// Identity is (AccountID, ID); TaxID is stored normalized (digits only).
type Company struct {
	ID        string `json:"id"`
	TaxID     string `json:"cnpj"`
	Name      string `json:"nome"`
	AccountID string `json:"conta"`
}
