package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/Werneck0live/simulador-trabalhista/internal/models"
)

// AccountWriter is satisfied by repository.AccountRepository.
type AccountWriter interface {
	Upsert(ctx context.Context, a *models.TenantAccount) (bool, error)
}

// Idempotente: cria a conta se não existir; se já existir, atualiza token e posição.
func SeedAccounts(ctx context.Context, repo AccountWriter, list []models.TenantAccount, log *slog.Logger) error {
	for _, a := range list {
		if a.ID == "" || a.Credential == "" {
			log.Warn("seed_skip_incomplete_account", "id", a.ID)
			continue
		}

		// timeout curto por item pra não travar
		ictx, cancel := context.WithTimeout(ctx, 3*time.Second)
		created, err := repo.Upsert(ictx, &a)
		cancel()
		if err != nil {
			return err
		}

		if created {
			log.Info("seed_account_created", "id", a.ID, "position", a.Position)
		} else {
			log.Info("seed_account_updated", "id", a.ID, "position", a.Position)
		}
	}

	log.Info("seed_accounts_done", "count", len(list))
	return nil
}
