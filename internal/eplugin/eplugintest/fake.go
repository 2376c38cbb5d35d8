// Package eplugintest provides in-memory fakes of the payroll API for tests.
package eplugintest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/eplugin"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

// API is a fake account. Nil function fields fall back to the static data.
type API struct {
	ID        string
	Companies []models.Company
	Rosters   map[string][]models.EmployeeSummary // by company id
	Employees map[string]models.Employee          // by employee id
	Documents map[string][]models.Document        // by company id
	Details   map[string]json.RawMessage          // by link

	ListCompaniesErr error
	ListEmployeesErr error
	GetEmployeeErr   error
	ListDocumentsErr error

	mu    sync.Mutex
	calls []string
}

var _ eplugin.API = (*API)(nil)

func (a *API) record(call string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, call)
}

// Calls lists the calls received, e.g. "ListCompanies".
func (a *API) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.calls...)
}

func (a *API) AccountID() string { return a.ID }

func (a *API) ListCompanies(context.Context) ([]models.Company, error) {
	a.record("ListCompanies")
	if a.ListCompaniesErr != nil {
		return nil, a.ListCompaniesErr
	}
	out := make([]models.Company, len(a.Companies))
	copy(out, a.Companies)
	for i := range out {
		out[i].AccountID = a.ID
	}
	return out, nil
}

func (a *API) ListEmployees(_ context.Context, companyID string) ([]models.EmployeeSummary, error) {
	a.record("ListEmployees:" + companyID)
	if a.ListEmployeesErr != nil {
		return nil, a.ListEmployeesErr
	}
	return a.Rosters[companyID], nil
}

func (a *API) GetEmployee(_ context.Context, employeeID string) (models.Employee, error) {
	a.record("GetEmployee:" + employeeID)
	if a.GetEmployeeErr != nil {
		return models.Employee{}, a.GetEmployeeErr
	}
	e, ok := a.Employees[employeeID]
	if !ok {
		return models.Employee{}, apperrors.E(apperrors.KindRemoteUnavailable, "fake.employee", fmt.Errorf("status 404"))
	}
	return e, nil
}

func (a *API) ListDocuments(_ context.Context, companyID string) ([]models.Document, error) {
	a.record("ListDocuments:" + companyID)
	if a.ListDocumentsErr != nil {
		return nil, a.ListDocumentsErr
	}
	return a.Documents[companyID], nil
}

func (a *API) GetDocumentDetail(_ context.Context, link string) (json.RawMessage, error) {
	a.record("GetDocumentDetail:" + link)
	d, ok := a.Details[link]
	if !ok {
		return nil, apperrors.E(apperrors.KindRemoteUnavailable, "fake.detail", errors.New("status 500"))
	}
	return d, nil
}

// Directory is an ordered set of fake accounts.
type Directory struct {
	Accounts []*API
}

func NewDirectory(accounts ...*API) *Directory { return &Directory{Accounts: accounts} }

func (d *Directory) AllAccountIDs() []string {
	ids := make([]string, 0, len(d.Accounts))
	for _, a := range d.Accounts {
		ids = append(ids, a.ID)
	}
	return ids
}

func (d *Directory) Source(accountID string) (eplugin.API, error) {
	for _, a := range d.Accounts {
		if a.ID == accountID {
			return a, nil
		}
	}
	return nil, apperrors.E(apperrors.KindUnknownAccount, "fake.source", fmt.Errorf("account %q", accountID))
}
