package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/playerbase/internal/metrics"
	"github.com/mcoot/playerbase/internal/services/players"
	"github.com/mcoot/playerbase/internal/storage"
	"github.com/mcoot/playerbase/internal/storage/memory"
	redisstorage "github.com/mcoot/playerbase/internal/storage/redis"
	"github.com/mcoot/playerbase/internal/storage/sqlstore"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
	StorageTypeSQLite   = "sqlite"
)

// Pinger is implemented by storage backends that can report their health
type Pinger interface {
	Ping(ctx context.Context) error
}

// App contains all wired application components
type App struct {
	// Storage
	Storage     storage.Storage
	StorageName string
	// Pinger is nil for backends without a connection to check
	Pinger Pinger

	// Services
	PlayerService *players.Service

	// Metrics is nil unless enabled in Config
	Metrics *metrics.Metrics
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// DatabaseURL is the PostgreSQL DSN (required if StorageType is "postgres")
	DatabaseURL string
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// EnableMetrics creates a Prometheus registry for the app
	EnableMetrics bool
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	store, err := openStorage(ctx, storageType, cfg)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, logger)
	app.StorageName = storageType
	if p, ok := store.(Pinger); ok {
		app.Pinger = p
	}
	if cfg.EnableMetrics {
		app.Metrics = metrics.New()
	}

	logger.Info("application initialised", slog.String("storage", storageType))
	return app, nil
}

func openStorage(ctx context.Context, storageType string, cfg Config) (storage.Storage, error) {
	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypePostgres, StorageTypeSQLite:
		dialect, err := sqlstore.ParseDialect(storageType)
		if err != nil {
			return nil, err
		}
		dsn, field := cfg.DatabaseURL, "DatabaseURL"
		if dialect == sqlstore.SQLite {
			dsn, field = cfg.SQLitePath, "SQLitePath"
		}
		if dsn == "" {
			return nil, fmt.Errorf("%s required when StorageType is %s", field, storageType)
		}
		return sqlstore.Open(ctx, dialect, dsn)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis', 'postgres' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		StorageName:   StorageTypeMemory,
		PlayerService: players.New(store, logger),
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
