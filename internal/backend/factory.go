package backend

import (
	"context"
	"fmt"

	"moneymage/internal/adapters"
	"moneymage/internal/amqp"
	"moneymage/internal/log"
	gsheet "moneymage/internal/sheets/google"
	"moneymage/internal/sheets/memory"
	"moneymage/internal/storage"
)

// DefaultFactory implements Factory.
type DefaultFactory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{logger: logger.WithComponent(log.ComponentBackend)}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case SheetsBackend:
		return f.createSheetsBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	// The broker is optional: local persistence works without it.
	var broker *amqp.Client
	if config.AMQPURL != "" {
		broker, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("AMQP unavailable, continuing without publish",
				log.FieldError, err.Error())
			broker = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				log.FieldExchange, config.AMQPExchange,
				log.FieldQueue, config.AMQPQueue)
		}
	}

	adapter := adapters.NewStoreAdapter(repo, broker, f.logger)
	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", broker != nil)

	cleanup := func() error {
		if broker != nil {
			broker.Close()
		}
		return repo.Close()
	}
	return &Result{Backend: adapter, Cleanup: cleanup}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*Result, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets backend",
		log.FieldSheet, config.GoogleSpreadsheetID)
	return &Result{Backend: cli}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}
	store := memory.NewFromFiles(dataDir)

	f.logger.Info("Initialized memory backend", "data_directory", dataDir)
	return &Result{Backend: store}, nil
}
