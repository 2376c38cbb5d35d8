package accounts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/eplugin"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

// Directory is the read side of the registry used by the resolver and the
// document locator.
type Directory interface {
	AllAccountIDs() []string
	Source(accountID string) (eplugin.API, error)
}

// ClientFactory builds the API client scoped to one account.
type ClientFactory func(models.TenantAccount) eplugin.API

// Registry is the ordered, immutable set of tenant accounts. The order is the
// probe order used when resolving a company.
type Registry struct {
	order   []string
	byID    map[string]models.TenantAccount
	clients map[string]eplugin.API
}

var _ Directory = (*Registry)(nil)

// NewRegistry validates the accounts and builds one client per account. The
// registry never changes afterwards, so it is safe for concurrent reads.
func NewRegistry(list []models.TenantAccount, factory ClientFactory) (*Registry, error) {
	if len(list) == 0 {
		return nil, errors.New("accounts: no tenant account configured")
	}
	if factory == nil {
		return nil, errors.New("accounts: nil client factory")
	}
	r := &Registry{
		order:   make([]string, 0, len(list)),
		byID:    make(map[string]models.TenantAccount, len(list)),
		clients: make(map[string]eplugin.API, len(list)),
	}
	for _, a := range list {
		a.ID = strings.TrimSpace(a.ID)
		if a.ID == "" {
			return nil, errors.New("accounts: empty account id")
		}
		if a.Credential == "" {
			return nil, fmt.Errorf("accounts: account %q has no token", a.ID)
		}
		if _, dup := r.byID[a.ID]; dup {
			return nil, fmt.Errorf("accounts: duplicate account %q", a.ID)
		}
		r.order = append(r.order, a.ID)
		r.byID[a.ID] = a
		r.clients[a.ID] = factory(a)
	}
	return r, nil
}

// AllAccountIDs returns the account ids in probe order.
func (r *Registry) AllAccountIDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) CredentialFor(accountID string) (string, error) {
	a, ok := r.byID[accountID]
	if !ok {
		return "", apperrors.E(apperrors.KindUnknownAccount, "accounts.credential", fmt.Errorf("account %q", accountID))
	}
	return a.Credential, nil
}

// Source returns the client scoped to accountID.
func (r *Registry) Source(accountID string) (eplugin.API, error) {
	c, ok := r.clients[accountID]
	if !ok {
		return nil, apperrors.E(apperrors.KindUnknownAccount, "accounts.source", fmt.Errorf("account %q", accountID))
	}
	return c, nil
}
