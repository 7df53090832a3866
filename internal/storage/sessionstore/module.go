package sessionstore

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/membersonly/internal/config"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

// Module provides the configured session store.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Invoke(registerLifecycle),
)

type storeParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStore(p storeParams) (repository.SessionStore, error) {
	switch p.Config.SessionStore {
	case config.SessionStoreRedis:
		store, err := DialRedis(p.Ctx, p.Config.RedisURL)
		if err != nil {
			return nil, err
		}
		p.Logger.Info("using redis session store")
		return store, nil
	case config.SessionStoreMemory, "":
		store, err := NewMemoryStore(p.Config.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("create memory session store: %w", err)
		}
		p.Logger.Info("using in-memory session store")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", p.Config.SessionStore)
	}
}

func registerLifecycle(lc fx.Lifecycle, store repository.SessionStore) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
