package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Origem da lista de contas do eplugin.
const (
	AccountsFromEnv   = "env"
	AccountsFromFile  = "file"
	AccountsFromMongo = "mongo"
)

type Config struct {
	Port        string
	LogLevel    slog.Level
	CORSOrigins []string

	BaseURL        string
	AccountIDs     []string // ordem = ordem de busca entre contas
	AccountsSource string
	AccountsFile   string
	PageSize       int
	RemoteTimeout  time.Duration
	YearPolicy     string

	MongoURI    string
	MongoDB     string
	RabbitURI   string
	RabbitQueue string

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	DeliveryTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getenvAny("8080", "PORT", "API_PORT"),
		LogLevel:    parseLevel(getenv("LOG_LEVEL", "info")),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "*")),

		BaseURL:        strings.TrimRight(getenv("EPLUGIN_BASE_URL", ""), "/"),
		AccountIDs:     splitList(getenv("EPLUGIN_ACCOUNTS", "")),
		AccountsSource: strings.ToLower(getenv("ACCOUNTS_SOURCE", AccountsFromEnv)),
		AccountsFile:   getenv("ACCOUNTS_FILE", ""),
		PageSize:       parseInt("EPLUGIN_PAGE_SIZE", 100),
		RemoteTimeout:  parseDuration("EPLUGIN_TIMEOUT", 15*time.Second),
		YearPolicy:     getenv("DOCUMENT_YEAR_POLICY", "current"),

		MongoURI:    getenvAny("mongodb://localhost:27017", "MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "simulador"),
		RabbitURI:   getenvAny("", "RABBITMQ_URL", "RABBIT_URI"),
		RabbitQueue: getenvAny("eplugin_entregas", "RABBITMQ_QUEUE", "RABBIT_QUEUE"),

		ReadHeaderTimeout: parseDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		ShutdownTimeout:   parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		DeliveryTimeout:   parseDuration("DELIVERY_TIMEOUT", 10*time.Second),
	}
}

// Validate checks the settings the API cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("EPLUGIN_BASE_URL is required"))
	}
	switch c.AccountsSource {
	case AccountsFromEnv:
		if len(c.AccountIDs) == 0 {
			errs = append(errs, errors.New("EPLUGIN_ACCOUNTS is required when ACCOUNTS_SOURCE=env"))
		}
	case AccountsFromFile:
		if c.AccountsFile == "" {
			errs = append(errs, errors.New("ACCOUNTS_FILE is required when ACCOUNTS_SOURCE=file"))
		}
	case AccountsFromMongo:
	default:
		errs = append(errs, fmt.Errorf("ACCOUNTS_SOURCE %q is not one of env, file, mongo", c.AccountsSource))
	}
	if c.PageSize <= 0 {
		errs = append(errs, errors.New("EPLUGIN_PAGE_SIZE must be positive"))
	}
	return errors.Join(errs...)
}
