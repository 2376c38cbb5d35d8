package eplugin

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
	"github.com/Werneck0live/simulador-trabalhista/internal/utils"
)

// API is what the resolver and the document locator need from one account.
type API interface {
	AccountID() string
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListEmployees(ctx context.Context, companyID string) ([]models.EmployeeSummary, error)
	GetEmployee(ctx context.Context, employeeID string) (models.Employee, error)
	ListDocuments(ctx context.Context, companyID string) ([]models.Document, error)
	GetDocumentDetail(ctx context.Context, link string) (json.RawMessage, error)
}

var _ API = (*Client)(nil)

var ErrInvalidPayload = errors.New("invalid payload")

type companyAttributes struct {
	CPFCNPJ flexString `json:"cpfcnpj"`
	Nome    string     `json:"nome"`
}

type employeeAttributes struct {
	Nome        string              `json:"nome"`
	CPF         flexString          `json:"cpf"`
	SalarioBase decimal.NullDecimal `json:"salarioBase"`
	Admissao    flexTime            `json:"admissao"`
}

type documentAttributes struct {
	Titulo    string   `json:"titulo"`
	Descricao string   `json:"descricao"`
	Criacao   flexTime `json:"criacao"`
}

func (c *Client) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rs, err := c.FetchAll(ctx, "/empresas", nil, c.pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]models.Company, 0, len(rs))
	for _, r := range rs {
		var a companyAttributes
		if err := r.decode(&a); err != nil {
			c.log.Warn("eplugin_company_skipped", "id", r.ID, "err", err)
			continue
		}
		out = append(out, models.Company{
			ID:        r.ID,
			TaxID:     utils.DigitsOnly(string(a.CPFCNPJ)),
			Name:      a.Nome,
			AccountID: c.accountID,
		})
	}
	return out, nil
}

func (c *Client) ListEmployees(ctx context.Context, companyID string) ([]models.EmployeeSummary, error) {
	var page collection
	q := url.Values{"filter[empresaId]": {companyID}}
	if err := c.get(ctx, "/funcionarios", q, &page); err != nil {
		return nil, err
	}
	out := make([]models.EmployeeSummary, 0, len(page.Data))
	for _, r := range page.Data {
		var a employeeAttributes
		if err := r.decode(&a); err != nil {
			c.log.Warn("eplugin_employee_skipped", "id", r.ID, "err", err)
			continue
		}
		out = append(out, models.EmployeeSummary{ID: r.ID, FullName: a.Nome, TaxID: string(a.CPF)})
	}
	return out, nil
}

// GetEmployee fetches one employee; salary and admission date are mandatory.
func (c *Client) GetEmployee(ctx context.Context, employeeID string) (models.Employee, error) {
	var body struct {
		Data Resource `json:"data"`
	}
	if err := c.get(ctx, "/funcionarios/"+url.PathEscape(employeeID), nil, &body); err != nil {
		return models.Employee{}, err
	}
	var a employeeAttributes
	if err := body.Data.decode(&a); err != nil {
		return models.Employee{}, errors.Join(ErrInvalidPayload, err)
	}
	if !a.SalarioBase.Valid || a.Admissao.IsZero() {
		return models.Employee{}, ErrInvalidPayload
	}
	id := body.Data.ID
	if id == "" {
		id = employeeID
	}
	return models.Employee{
		ID:            id,
		FullName:      a.Nome,
		TaxID:         string(a.CPF),
		BaseSalary:    a.SalarioBase.Decimal,
		AdmissionDate: a.Admissao.Time,
	}, nil
}

// ListDocuments returns the company's documents, newest first as sorted by
// the API.
func (c *Client) ListDocuments(ctx context.Context, companyID string) ([]models.Document, error) {
	q := url.Values{"filter[empresaId]": {companyID}, "sort": {"-criacao"}}
	rs, err := c.fetchPages(ctx, "/documentos", q, c.pageSize, true)
	if err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(rs))
	for _, r := range rs {
		var a documentAttributes
		if err := r.decode(&a); err != nil {
			c.log.Warn("eplugin_document_skipped", "id", r.ID, "err", err)
			continue
		}
		out = append(out, models.Document{
			ID:          r.ID,
			Title:       a.Titulo,
			Description: a.Descricao,
			CreatedAt:   a.Criacao.Time,
			DetailLink:  r.relatedLink(),
		})
	}
	return out, nil
}

// GetDocumentDetail follows a detail link and returns its data member.
func (c *Client) GetDocumentDetail(ctx context.Context, link string) (json.RawMessage, error) {
	if link == "" {
		return nil, apperrors.E(apperrors.KindRemoteUnavailable, "eplugin.detail", errors.New("empty link"))
	}
	var body document
	if err := c.get(ctx, link, nil, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}
