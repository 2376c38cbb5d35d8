package accounts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Werneck0live/simulador-trabalhista/internal/apperrors"
	"github.com/Werneck0live/simulador-trabalhista/internal/eplugin"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

func clientFactory(a models.TenantAccount) eplugin.API {
	return eplugin.NewClient(a.ID, "http://eplugin.invalid", a.Credential)
}

func TestNewRegistry_KeepsConfiguredOrder(t *testing.T) {
	r, err := NewRegistry([]models.TenantAccount{
		{ID: "empresa2", Credential: "t2"},
		{ID: "empresa1", Credential: "t1"},
		{ID: "empresa3", Credential: "t3"},
	}, clientFactory)
	require.NoError(t, err)

	assert.Equal(t, []string{"empresa2", "empresa1", "empresa3"}, r.AllAccountIDs())

	tok, err := r.CredentialFor("empresa1")
	require.NoError(t, err)
	assert.Equal(t, "t1", tok)

	src, err := r.Source("empresa3")
	require.NoError(t, err)
	assert.Equal(t, "empresa3", src.AccountID())
}

func TestNewRegistry_AllAccountIDsIsACopy(t *testing.T) {
	r, err := NewRegistry([]models.TenantAccount{{ID: "a", Credential: "x"}, {ID: "b", Credential: "y"}}, clientFactory)
	require.NoError(t, err)

	ids := r.AllAccountIDs()
	ids[0] = "zzz"
	assert.Equal(t, []string{"a", "b"}, r.AllAccountIDs())
}

func TestNewRegistry_Rejects(t *testing.T) {
	cases := map[string][]models.TenantAccount{
		"empty":     nil,
		"no id":     {{ID: " ", Credential: "x"}},
		"no token":  {{ID: "a"}},
		"duplicate": {{ID: "a", Credential: "x"}, {ID: "a", Credential: "y"}},
	}
	for name, list := range cases {
		_, err := NewRegistry(list, clientFactory)
		assert.Error(t, err, name)
	}

	_, err := NewRegistry([]models.TenantAccount{{ID: "a", Credential: "x"}}, nil)
	assert.Error(t, err)
}

func TestRegistry_UnknownAccount(t *testing.T) {
	r, err := NewRegistry([]models.TenantAccount{{ID: "a", Credential: "x"}}, clientFactory)
	require.NoError(t, err)

	_, err = r.CredentialFor("b")
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
	_, err = r.Source("b")
	assert.ErrorIs(t, err, apperrors.ErrUnknownAccount)
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r, err := NewRegistry([]models.TenantAccount{{ID: "a", Credential: "x"}, {ID: "b", Credential: "y"}}, clientFactory)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range r.AllAccountIDs() {
				if _, err := r.CredentialFor(id); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
}

func TestFromEnv(t *testing.T) {
	env := map[string]string{
		"EPLUGIN_TOKEN_EMPRESA1":  "t1",
		"EPLUGIN_TOKEN_FILIAL_SP": "t2",
	}
	got, err := FromEnv([]string{"empresa1", " filial-sp ", ""}, func(k string) string { return env[k] })
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "filial-sp", got[1].ID)
	assert.Equal(t, "t2", got[1].Credential)

	_, err = FromEnv([]string{"empresa9"}, func(string) string { return "" })
	assert.Error(t, err)
}

func TestFromFile(t *testing.T) {
	t.Setenv("TEST_TOKEN_B", "tok-b")
	path := filepath.Join(t.TempDir(), "accounts.yaml")
	content := "accounts:\n" +
		"  - id: empresa1\n    token: tok-a\n" +
		"  - id: empresa2\n    token: ${TEST_TOKEN_B}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := FromFile(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "empresa1", got[0].ID)
	assert.Equal(t, "tok-b", got[1].Credential)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

type storeMock struct {
	ListFn func(ctx context.Context) ([]models.TenantAccount, error)
}

func (m *storeMock) List(ctx context.Context) ([]models.TenantAccount, error) { return m.ListFn(ctx) }

func TestFromStore_SortsByPosition(t *testing.T) {
	s := &storeMock{ListFn: func(context.Context) ([]models.TenantAccount, error) {
		return []models.TenantAccount{
			{ID: "b", Credential: "y", Position: 2},
			{ID: "a", Credential: "x", Position: 1},
		}, nil
	}}
	got, err := FromStore(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].ID)

	s.ListFn = func(context.Context) ([]models.TenantAccount, error) { return nil, errors.New("boom") }
	_, err = FromStore(context.Background(), s)
	assert.Error(t, err)
}
