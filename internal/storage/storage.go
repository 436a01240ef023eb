package storage

import (
	"context"
	"fmt"

	"github.com/aaravmahajanofficial/shopping-cart/internal/config"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage/bunt"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage/memory"
	"github.com/aaravmahajanofficial/shopping-cart/internal/storage/postgres"
	redisStorage "github.com/aaravmahajanofficial/shopping-cart/internal/storage/redis"
)

// Storage is a key-value string store. Read reports a missing key with
// found=false and a nil error.
type Storage interface {
	Read(ctx context.Context, key string) (value string, found bool, err error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// New opens the driver named in cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config) (Storage, error) {

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.New(), nil

	case config.DriverBunt:
		return bunt.Open(cfg.Storage.Path)

	case config.DriverRedis:
		client, err := redisStorage.NewClient(ctx, &cfg.RedisConnect)
		if err != nil {
			return nil, err
		}
		return redisStorage.New(client, cfg.Storage.KeyPrefix), nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}

		store := postgres.New(db, cfg.Storage.KeyPrefix)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
