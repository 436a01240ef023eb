package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/shopping-cart/internal/config"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

func NewHealthHandler(cfg *config.Config, store storage.Storage) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "storage",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check:     storageCheck(store, cfg.Cart.StorageKey),
		},
	}

	switch cfg.Storage.Driver {
	case config.DriverRedis:
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		})
	case config.DriverPostgres:
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "shopping-cart",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// storageCheck pings drivers that support it and falls back to reading the
// cart key.
func storageCheck(store storage.Storage, key string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if store == nil {
			return fmt.Errorf("storage is not initialized")
		}

		if pinger, ok := store.(storage.Pinger); ok {
			if err := pinger.Ping(ctx); err != nil {
				return fmt.Errorf("failed to reach storage: %w", err)
			}
			return nil
		}

		if _, _, err := store.Read(ctx, key); err != nil {
			return fmt.Errorf("failed to read from storage: %w", err)
		}

		return nil
	}
}
