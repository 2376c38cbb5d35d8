package accounts

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

// TokenEnvKey is the variable holding the token of an account: empresa1 -> EPLUGIN_TOKEN_EMPRESA1.
func TokenEnvKey(accountID string) string {
	key := strings.ToUpper(accountID)
	key = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, key)
	return "EPLUGIN_TOKEN_" + key
}

// FromEnv reads the ordered account ids and looks each token up in the environment.
func FromEnv(ids []string, lookup func(string) string) ([]models.TenantAccount, error) {
	if lookup == nil {
		lookup = os.Getenv
	}
	out := make([]models.TenantAccount, 0, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		tok := lookup(TokenEnvKey(id))
		if tok == "" {
			return nil, fmt.Errorf("accounts: %s not set", TokenEnvKey(id))
		}
		out = append(out, models.TenantAccount{ID: id, Credential: tok, Position: i})
	}
	return out, nil
}

// FromFile reads accounts from a YAML/JSON/TOML file:
//
//	accounts:
//	  - id: empresa1
//	    token: ${EPLUGIN_TOKEN_EMPRESA1}
//
// Tokens are expanded against the environment. File order is probe order
// unless positions are given.
func FromFile(path string) ([]models.TenantAccount, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("accounts: read %s: %w", path, err)
	}
	var list []models.TenantAccount
	if err := v.UnmarshalKey("accounts", &list); err != nil {
		return nil, fmt.Errorf("accounts: decode %s: %w", path, err)
	}
	for i := range list {
		list[i].Credential = os.ExpandEnv(list[i].Credential)
		if list[i].Position == 0 {
			list[i].Position = i
		}
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

// Store is a persistent list of accounts, e.g. the Mongo repository.
type Store interface {
	List(ctx context.Context) ([]models.TenantAccount, error)
}

// FromStore loads the accounts kept in store, ordered by position.
func FromStore(ctx context.Context, s Store) ([]models.TenantAccount, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("accounts: load from store: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}
