package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/TeemuStew/expense-tracker/internal/events"
	"github.com/TeemuStew/expense-tracker/internal/store"
	"github.com/TeemuStew/expense-tracker/internal/store/memory"
	"github.com/TeemuStew/expense-tracker/internal/store/postgres"
	"github.com/TeemuStew/expense-tracker/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.withPublishing(config, memory.New(), nil)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case PostgresBackend:
		return f.createPostgresBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := sqlite.New(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return f.withPublishing(config, repo, repo.Close)
}

func (f *DefaultFactory) createPostgresBackend(ctx context.Context, config Config) (*Result, error) {
	repo, err := postgres.New(ctx, config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("initialize PostgreSQL repository: %w", err)
	}

	f.logger.Info("Initialized PostgreSQL backend")
	return f.withPublishing(config, repo, repo.Close)
}

// withPublishing wraps the store with change publishing when AMQP is
// configured. A broken broker downgrades to a plain store rather than
// failing startup.
func (f *DefaultFactory) withPublishing(config Config, s store.Store, cleanup CleanupFunc) (*Result, error) {
	if config.AMQPURL == "" {
		return &Result{Store: s, Cleanup: cleanup}, nil
	}

	client, err := events.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without change publishing", "error", err)
		return &Result{Store: s, Cleanup: cleanup}, nil
	}

	f.logger.Info("Initialized AMQP change publishing",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)

	combined := func() error {
		var errs []error
		if cleanup != nil {
			if err := cleanup(); err != nil {
				errs = append(errs, fmt.Errorf("store: %w", err))
			}
		}
		if err := client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
		return errors.Join(errs...)
	}
	return &Result{Store: events.WrapStore(s, client), Cleanup: combined}, nil
}
