package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/Werneck0live/simulador-trabalhista/internal/labor"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

type simMock struct {
	VacationFn    func(ctx context.Context, cnpj, identifier string, days int, sell *bool) (labor.VacationSimulation, error)
	TerminationFn func(ctx context.Context, cnpj, identifier string, date time.Time, kind string) (labor.TerminationResult, error)
	DocumentFn    func(ctx context.Context, cnpj, docType, month string) (models.Document, error)
}

func (m *simMock) SimulateVacation(ctx context.Context, cnpj, identifier string, days int, sell *bool) (labor.VacationSimulation, error) {
	if m.VacationFn == nil {
		return labor.VacationSimulation{}, errors.New("VacationFn not set")
	}
	return m.VacationFn(ctx, cnpj, identifier, days, sell)
}
func (m *simMock) SimulateTermination(ctx context.Context, cnpj, identifier string, date time.Time, kind string) (labor.TerminationResult, error) {
	if m.TerminationFn == nil {
		return labor.TerminationResult{}, errors.New("TerminationFn not set")
	}
	return m.TerminationFn(ctx, cnpj, identifier, date, kind)
}
func (m *simMock) FindDocument(ctx context.Context, cnpj, docType, month string) (models.Document, error) {
	if m.DocumentFn == nil {
		return models.Document{}, errors.New("DocumentFn not set")
	}
	return m.DocumentFn(ctx, cnpj, docType, month)
}

type catalogMock struct {
	CompaniesFn func(ctx context.Context) ([]models.Company, error)
	EmployeesFn func(ctx context.Context, accountID, companyID string) ([]models.EmployeeSummary, error)
}

func (m *catalogMock) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if m.CompaniesFn == nil {
		return nil, errors.New("CompaniesFn not set")
	}
	return m.CompaniesFn(ctx)
}
func (m *catalogMock) ListEmployees(ctx context.Context, accountID, companyID string) ([]models.EmployeeSummary, error) {
	if m.EmployeesFn == nil {
		return nil, errors.New("EmployeesFn not set")
	}
	return m.EmployeesFn(ctx, accountID, companyID)
}
