package worker

import (
	"log/slog"

	"github.com/polkiloo/membersonly/internal/config"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
	"go.uber.org/fx"
)

// Module provides the hash pool and exposes it as the application PasswordHasher.
var Module = fx.Provide(
	newHashPool,
	func(p *HashPool) pkgAuth.PasswordHasher { return p },
)

type poolParams struct {
	fx.In

	Hasher *pkgAuth.BcryptHasher
	Config *config.Config
	Logger *slog.Logger
}

func newHashPool(p poolParams) *HashPool {
	return NewHashPool(p.Hasher, p.Config.HashWorkers, p.Logger)
}
