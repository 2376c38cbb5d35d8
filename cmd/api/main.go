package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Werneck0live/simulador-trabalhista/internal/accounts"
	"github.com/Werneck0live/simulador-trabalhista/internal/admin"
	"github.com/Werneck0live/simulador-trabalhista/internal/broker"
	"github.com/Werneck0live/simulador-trabalhista/internal/config"
	"github.com/Werneck0live/simulador-trabalhista/internal/db"
	"github.com/Werneck0live/simulador-trabalhista/internal/documents"
	"github.com/Werneck0live/simulador-trabalhista/internal/eplugin"
	"github.com/Werneck0live/simulador-trabalhista/internal/handlers"
	"github.com/Werneck0live/simulador-trabalhista/internal/models"
	"github.com/Werneck0live/simulador-trabalhista/internal/repository"
	"github.com/Werneck0live/simulador-trabalhista/internal/resolver"
	"github.com/Werneck0live/simulador-trabalhista/internal/simulation"
)

// cmd/api/main.go
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "dotenv: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Load()

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	log := config.InitLogger(cfg.LogLevel)
	log.Info("starting", "port", cfg.Port, "accounts_source", cfg.AccountsSource)

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed-accounts")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed-accounts":
			if err := seedAccounts(cfg, log); err != nil {
				log.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			log.Info("seed_done")
			return // encerra o processo sem subir HTTP
		default:
			log.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Error("invalid_config", "err", err)
		os.Exit(1)
	}

	list, err := loadAccounts(cfg)
	if err != nil {
		log.Error("accounts_load_error", "err", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: cfg.RemoteTimeout}
	registry, err := accounts.NewRegistry(list, func(a models.TenantAccount) eplugin.API {
		return eplugin.NewClient(a.ID, cfg.BaseURL, a.Credential,
			eplugin.WithHTTPClient(httpClient),
			eplugin.WithPageSize(cfg.PageSize),
			eplugin.WithLogger(log),
		)
	})
	if err != nil {
		log.Error("registry_error", "err", err)
		os.Exit(1)
	}
	log.Info("accounts_loaded", "accounts", registry.AllAccountIDs())

	// publisher (Rabbit) é opcional: sem ele as entregas só são logadas
	var dispatcher simulation.Dispatcher = broker.NoopDispatcher{Log: log}
	if cfg.RabbitURI != "" {
		pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitQueue)
		if err != nil {
			log.Warn("rabbitmq_unavailable", "err", err)
		} else {
			defer pub.Close()
			dispatcher = broker.NewDeliveryDispatcher(pub, log)
		}
	}

	res := resolver.New(registry, log)
	loc := documents.NewLocator(registry,
		documents.WithYearPolicy(documents.ParseYearPolicy(cfg.YearPolicy)),
		documents.WithLogger(log),
	)
	svc := simulation.NewService(res, loc, dispatcher,
		simulation.WithLogger(log),
		simulation.WithDeliveryTimeout(cfg.DeliveryTimeout),
	)
	h := handlers.NewSimulationHandler(svc, res, 0, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(h, cfg.CORSOrigins),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		log.Info("api_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	log.Info("stopped")
}

// loadAccounts lê as contas uma vez; o registry não muda depois do start.
func loadAccounts(cfg *config.Config) ([]models.TenantAccount, error) {
	switch cfg.AccountsSource {
	case config.AccountsFromFile:
		return accounts.FromFile(cfg.AccountsFile)
	case config.AccountsFromMongo:
		client, err := db.NewMongoClient(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return accounts.FromStore(ctx, repository.NewAccountRepository(client.Database(cfg.MongoDB)))
	default:
		return accounts.FromEnv(cfg.AccountIDs, os.Getenv)
	}
}

// seedAccounts grava no Mongo as contas do env (ou do arquivo) para ACCOUNTS_SOURCE=mongo.
func seedAccounts(cfg *config.Config, log *slog.Logger) error {
	var (
		list []models.TenantAccount
		err  error
	)
	if cfg.AccountsFile != "" {
		list, err = accounts.FromFile(cfg.AccountsFile)
	} else {
		list, err = accounts.FromEnv(cfg.AccountIDs, os.Getenv)
	}
	if err != nil {
		return err
	}

	// conecta somente o necessário para o seed
	client, err := db.NewMongoClient(cfg.MongoURI)
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := repository.NewAccountRepository(client.Database(cfg.MongoDB))
	ctx := context.Background()
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}
	return admin.SeedAccounts(ctx, repo, list, log)
}
