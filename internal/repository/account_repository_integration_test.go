//go:build integration
// +build integration

package repository

/*
	Para Rodar: go test -tags=integration -v ./internal/repository -run TestAccountRepository_Integration -count=1

	obs: Rodar todos os de integração: go test -tags=integration -v ./... -count=1
*/

import (
	"context"
	"testing"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/Werneck0live/simulador-trabalhista/internal/accounts"
	"github.com/Werneck0live/simulador-trabalhista/internal/db"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

// Exercita: EnsureIndexes -> Upsert -> List (ordem) -> Upsert (update) -> Delete
func TestAccountRepository_Integration_UpsertListDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Sobe Mongo real
	mongoC, err := mongodb.RunContainer(ctx, tc.WithImage("mongo:7"))
	if err != nil {
		t.Fatalf("start mongo: %v", err)
	}
	t.Cleanup(func() { _ = mongoC.Terminate(ctx) })

	uri, err := mongoC.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("conn string: %v", err)
	}

	client, err := db.NewMongoClient(uri)
	if err != nil {
		t.Fatalf("mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo := NewAccountRepository(client.Database("testdb"))
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	// 1) Upsert fora de ordem
	for _, a := range []models.TenantAccount{
		{ID: "empresa2", Credential: "tok-2", Position: 1},
		{ID: "empresa1", Credential: "tok-1", Position: 0},
	} {
		created, err := repo.Upsert(ctx, &a)
		if err != nil {
			t.Fatalf("upsert %s: %v", a.ID, err)
		}
		if !created {
			t.Fatalf("upsert %s: expected created", a.ID)
		}
	}

	// 2) List respeita position
	list, err := accounts.FromStore(ctx, repo)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != "empresa1" || list[1].ID != "empresa2" {
		t.Fatalf("order mismatch: %#v", list)
	}
	if list[0].Credential != "tok-1" || list[0].CreatedAt.IsZero() {
		t.Fatalf("fields mismatch: %#v", list[0])
	}

	// 3) Upsert de conta existente atualiza o token
	created, err := repo.Upsert(ctx, &models.TenantAccount{ID: "empresa1", Credential: "tok-1b", Position: 0})
	if err != nil || created {
		t.Fatalf("re-upsert: created=%v err=%v", created, err)
	}
	got, err := repo.GetByID(ctx, "empresa1")
	if err != nil || got.Credential != "tok-1b" {
		t.Fatalf("after update mismatch: %#v err=%v", got, err)
	}

	// 4) Delete
	if err := repo.Delete(ctx, "empresa2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, "empresa2"); err == nil {
		t.Fatalf("expected not found after delete")
	}
}
