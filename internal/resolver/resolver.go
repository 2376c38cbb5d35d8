package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Werneck0live/simulador-trabalhista/internal/accounts"
	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
	"github.com/Werneck0live/simulador-trabalhista/internal/utils"
)

// Resolver locates companies and employees across the tenant accounts.
// Accounts are probed one at a time in registry order and the first match
// wins, so the order of the registry decides ties between accounts.
type Resolver struct {
	dir accounts.Directory
	log *slog.Logger
}

func New(dir accounts.Directory, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{dir: dir, log: log.With("cmp", "resolver")}
}

// ResolveCompanyByTaxID finds the company whose normalized CNPJ equals taxID.
func (r *Resolver) ResolveCompanyByTaxID(ctx context.Context, taxID string) (models.Company, error) {
	const op = "resolver.company"
	want := utils.DigitsOnly(taxID)
	if want == "" {
		return models.Company{}, apperrors.E(apperrors.KindCompanyNotFound, op, errors.New("empty tax id"))
	}

	for _, accountID := range r.dir.AllAccountIDs() {
		src, err := r.dir.Source(accountID)
		if err != nil {
			return models.Company{}, err
		}
		companies, err := src.ListCompanies(ctx)
		if err != nil {
			r.log.Error("company_probe_failed", "account", accountID, "err", err)
			return models.Company{}, apperrors.E(apperrors.KindRemoteUnavailable, op, err)
		}
		for _, c := range companies {
			if c.TaxID != "" && utils.DigitsOnly(c.TaxID) == want {
				c.AccountID = accountID
				r.log.Info("company_resolved", "account", accountID, "company_id", c.ID, "name", c.Name)
				return c, nil
			}
		}
		r.log.Debug("company_not_in_account", "account", accountID, "scanned", len(companies))
	}
	return models.Company{}, apperrors.E(apperrors.KindCompanyNotFound, op, fmt.Errorf("cnpj %s", want))
}

// ResolveEmployee finds an employee of companyID by full name, first name or
// CPF. Employees sharing a first name are not disambiguated: the first one in
// roster order is returned.
func (r *Resolver) ResolveEmployee(ctx context.Context, accountID, companyID, identifier string) (string, error) {
	const op = "resolver.employee"
	roster, err := r.ListEmployees(ctx, accountID, companyID)
	if err != nil {
		return "", err
	}

	m := newEmployeeMatcher(identifier)
	for _, e := range roster {
		if m.matches(e) {
			r.log.Info("employee_resolved", "account", accountID, "employee_id", e.ID, "name", e.FullName)
			return e.ID, nil
		}
	}
	return "", apperrors.E(apperrors.KindEmployeeNotFound, op, fmt.Errorf("%d employees scanned", len(roster)))
}

// FetchEmployeeDetail loads salary and admission date of one employee.
func (r *Resolver) FetchEmployeeDetail(ctx context.Context, accountID, employeeID string) (models.Employee, error) {
	src, err := r.dir.Source(accountID)
	if err != nil {
		return models.Employee{}, err
	}
	e, err := src.GetEmployee(ctx, employeeID)
	if err != nil {
		r.log.Error("employee_detail_failed", "account", accountID, "employee_id", employeeID, "err", err)
		return models.Employee{}, apperrors.E(apperrors.KindEmployeeDetailUnavailable, "resolver.employee_detail", err)
	}
	return e, nil
}

// ListCompanies aggregates the companies of every account in registry order.
func (r *Resolver) ListCompanies(ctx context.Context) ([]models.Company, error) {
	var all []models.Company
	for _, accountID := range r.dir.AllAccountIDs() {
		src, err := r.dir.Source(accountID)
		if err != nil {
			return nil, err
		}
		cs, err := src.ListCompanies(ctx)
		if err != nil {
			return nil, apperrors.E(apperrors.KindRemoteUnavailable, "resolver.companies", err)
		}
		for i := range cs {
			cs[i].AccountID = accountID
		}
		all = append(all, cs...)
	}
	return all, nil
}

// ListEmployees returns the roster of one company.
func (r *Resolver) ListEmployees(ctx context.Context, accountID, companyID string) ([]models.EmployeeSummary, error) {
	src, err := r.dir.Source(accountID)
	if err != nil {
		return nil, err
	}
	roster, err := src.ListEmployees(ctx, companyID)
	if err != nil {
		return nil, apperrors.E(apperrors.KindRemoteUnavailable, "resolver.employees", err)
	}
	return roster, nil
}

type employeeMatcher struct {
	fullName  string
	firstName string
	cpf       string
}

func newEmployeeMatcher(identifier string) employeeMatcher {
	full := strings.ToLower(strings.TrimSpace(identifier))
	first := ""
	if f := strings.Fields(full); len(f) > 0 {
		first = f[0]
	}
	return employeeMatcher{fullName: full, firstName: first, cpf: utils.DigitsOnly(identifier)}
}

func (m employeeMatcher) matches(e models.EmployeeSummary) bool {
	name := strings.ToLower(strings.TrimSpace(e.FullName))
	if m.fullName != "" && name == m.fullName {
		return true
	}
	if m.firstName != "" && strings.Contains(name, m.firstName) {
		return true
	}
	return m.cpf != "" && e.TaxID != "" && utils.DigitsOnly(e.TaxID) == m.cpf
}
