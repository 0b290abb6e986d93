package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	"github.com/srbeng/srb-site/internal/logging"
	"github.com/srbeng/srb-site/internal/storage"
	"github.com/srbeng/srb-site/internal/storage/memory"
	"github.com/srbeng/srb-site/internal/storage/postgres"
	"github.com/srbeng/srb-site/internal/storage/postgrest"
	"github.com/srbeng/srb-site/internal/storage/sqlite"
)

type StoreOptions struct {
	// Migrate applies the schema for the postgres driver.
	Migrate bool
	Logger  *zap.Logger
}

// OpenStore selects the table backend once, from REMOTE_DRIVER and the
// credentials present. Callers own the returned store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, opt StoreOptions) (storage.Store, error) {
	log := logging.OrNop(opt.Logger).Named("storage")

	driver := cfg.RemoteDriver()
	switch driver {
	case config.DriverMemory:
		log.Info("no remote backend configured, using seeded in-memory records")
		return memory.New(), nil

	case config.DriverPostgREST:
		log.Info("using hosted table backend", zap.String("url", cfg.Remote.SupabaseURL))
		return postgrest.New(cfg.Remote.SupabaseURL, cfg.Remote.SupabaseAnonKey, &http.Client{Timeout: 15 * time.Second}), nil

	case config.DriverPostgres:
		pool, err := postgres.Open(ctx, cfg.Remote.DSN, postgres.PoolOptions{})
		if err != nil {
			return nil, err
		}
		store := postgres.New(pool)
		if opt.Migrate {
			if err := store.Migrate(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		log.Info("using postgres backend")
		return store, nil

	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.Remote.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite backend", zap.String("path", cfg.Remote.SQLitePath))
		return store, nil

	default:
		return nil, fmt.Errorf("unknown remote driver %q", driver)
	}
}

// SeedAdmin upserts the bootstrap admin from ADMIN_EMAIL/ADMIN_PW_CODE when
// both are set.
func SeedAdmin(ctx context.Context, users storage.AdminUsers, cfg config.AdminConfig) (bool, error) {
	if cfg.Email == "" || cfg.PWCode == "" {
		return false, nil
	}
	if _, err := users.Upsert(ctx, cfg.Email, cfg.PWCode, ""); err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	return true, nil
}
