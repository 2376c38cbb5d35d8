// Package simulation wires resolution, the labor engine and document lookup
// into the operations exposed by the HTTP layer.
package simulation

import (
	"context"
	"log/slog"
	"time"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/labor"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

type Resolver interface {
	ResolveCompanyByTaxID(ctx context.Context, taxID string) (models.Company, error)
	ResolveEmployee(ctx context.Context, accountID, companyID, identifier string) (string, error)
	FetchEmployeeDetail(ctx context.Context, accountID, employeeID string) (models.Employee, error)
}

type Locator interface {
	ListDocuments(ctx context.Context, accountID, companyID string) ([]models.Document, error)
	SelectDocument(docs []models.Document, requestedType, requestedMonth string) *models.Document
	FetchDocumentDetail(ctx context.Context, accountID string, doc models.Document) models.Document
}

// Dispatcher delivers a located document downstream.
type Dispatcher interface {
	DispatchDocument(ctx context.Context, company models.Company, doc models.Document) error
}

type Service struct {
	resolver        Resolver
	locator         Locator
	dispatcher      Dispatcher
	deliveryTimeout time.Duration
	now             func() time.Time
	log             *slog.Logger
}

type Option func(*Service)

func WithClock(now func() time.Time) Option      { return func(s *Service) { s.now = now } }
func WithLogger(log *slog.Logger) Option         { return func(s *Service) { s.log = log } }
func WithDeliveryTimeout(d time.Duration) Option { return func(s *Service) { s.deliveryTimeout = d } }

func NewService(r Resolver, l Locator, d Dispatcher, opts ...Option) *Service {
	s := &Service{
		resolver:        r,
		locator:         l,
		dispatcher:      d,
		deliveryTimeout: 10 * time.Second,
		now:             time.Now,
		log:             slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	s.log = s.log.With("cmp", "simulation")
	return s
}

func (s *Service) employee(ctx context.Context, cnpj, identifier string) (models.Employee, error) {
	company, err := s.resolver.ResolveCompanyByTaxID(ctx, cnpj)
	if err != nil {
		return models.Employee{}, err
	}
	id, err := s.resolver.ResolveEmployee(ctx, company.AccountID, company.ID, identifier)
	if err != nil {
		return models.Employee{}, err
	}
	return s.resolver.FetchEmployeeDetail(ctx, company.AccountID, id)
}

// SimulateVacation resolves the employee and computes the vacation payout.
// A nil sell returns both variants.
func (s *Service) SimulateVacation(ctx context.Context, cnpj, identifier string, days int, sell *bool) (labor.VacationSimulation, error) {
	emp, err := s.employee(ctx, cnpj, identifier)
	if err != nil {
		return labor.VacationSimulation{}, err
	}
	if !labor.VacationEligible(emp.AdmissionDate, s.now()) {
		return labor.VacationSimulation{}, apperrors.E(apperrors.KindVacationNotYetEligible, "simulation.vacation", nil)
	}

	sim, err := labor.SimulateVacation(emp.BaseSalary, days, sell)
	if err != nil {
		return labor.VacationSimulation{}, err
	}
	for _, r := range []*labor.VacationResult{sim.Result, sim.WithoutSale, sim.WithSale} {
		if r != nil {
			r.EmployeeName = emp.FullName
		}
	}
	s.log.Info("vacation_simulated", "employee_id", emp.ID, "days", days, "both", sim.Both())
	return sim, nil
}

// SimulateTermination resolves the employee and computes the settlement.
func (s *Service) SimulateTermination(ctx context.Context, cnpj, identifier string, terminationDate time.Time, terminationType string) (labor.TerminationResult, error) {
	kind, err := labor.ParseTerminationType(terminationType)
	if err != nil {
		return labor.TerminationResult{}, err
	}
	emp, err := s.employee(ctx, cnpj, identifier)
	if err != nil {
		return labor.TerminationResult{}, err
	}
	res, err := labor.CalculateTermination(emp.BaseSalary, emp.AdmissionDate, terminationDate, kind)
	if err != nil {
		return labor.TerminationResult{}, err
	}
	res.EmployeeName = emp.FullName
	s.log.Info("termination_simulated", "employee_id", emp.ID, "type", string(kind), "tenure_months", res.TenureMonths)
	return res, nil
}

// FindDocument locates a company document by type and optional month and
// schedules its delivery. Every lookup failure is reported as
// DocumentNotFound tagged with the step that failed.
func (s *Service) FindDocument(ctx context.Context, cnpj, docType, month string) (models.Document, error) {
	const op = "simulation.document"
	company, err := s.resolver.ResolveCompanyByTaxID(ctx, cnpj)
	if err != nil {
		return models.Document{}, apperrors.DocumentNotFound(op, apperrors.StepCompany, err)
	}
	docs, err := s.locator.ListDocuments(ctx, company.AccountID, company.ID)
	if err != nil {
		return models.Document{}, apperrors.DocumentNotFound(op, apperrors.StepDocuments, err)
	}
	if len(docs) == 0 {
		return models.Document{}, apperrors.DocumentNotFound(op, apperrors.StepDocuments, nil)
	}
	match := s.locator.SelectDocument(docs, docType, month)
	if match == nil {
		s.log.Info("document_not_matched", "company_id", company.ID, "type", docType, "month", month, "scanned", len(docs))
		return models.Document{}, apperrors.DocumentNotFound(op, apperrors.StepMatch, nil)
	}

	doc := s.locator.FetchDocumentDetail(ctx, company.AccountID, *match)
	s.dispatch(company, doc)
	return doc, nil
}

// dispatch runs detached from the request context so the response never
// waits on it. Failures are logged only.
func (s *Service) dispatch(company models.Company, doc models.Document) {
	if s.dispatcher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.deliveryTimeout)
		defer cancel()
		if err := s.dispatcher.DispatchDocument(ctx, company, doc); err != nil {
			s.log.Error("delivery_dispatch_failed", "company_id", company.ID, "document_id", doc.ID, "err", err)
		}
	}()
}
