package database

import (
	"context"
	"fmt"

	"stockroom/internal/config"
	"stockroom/internal/repositories"
	"stockroom/pkg/logger"
)

// Store bundles the repositories of one backing store with its lifecycle.
type Store struct {
	Driver   string
	Users    repositories.UserRepository
	Products repositories.ProductRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the store's connections.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the store selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*Store, error) {
	ctx = logg.WithField(ctx, "store_driver", cfg.StoreDriver)

	var (
		store *Store
		err   error
	)
	switch cfg.StoreDriver {
	case config.DriverMongo:
		store, err = ConnectMongo(ctx, cfg.MongoURL, cfg.DatabaseName, cfg.MongoConnectTimeout)
	case config.DriverPostgres, config.DriverSQLite:
		store, err = OpenGORMStore(cfg.StoreDriver, cfg.DatabaseDSN)
	case config.DriverMemory:
		store = NewMemoryStore()
	default:
		err = fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	logg.Info(ctx, "store.connected")
	return store, nil
}

// NewMemoryStore returns a process-memory store. Contents are lost on exit.
func NewMemoryStore() *Store {
	return &Store{
		Driver:   config.DriverMemory,
		Users:    repositories.NewMemoryUserRepository(),
		Products: repositories.NewMemoryProductRepository(),
	}
}
