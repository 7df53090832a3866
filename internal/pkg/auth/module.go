package auth

import (
	"github.com/polkiloo/membersonly/internal/config"
	"github.com/polkiloo/membersonly/internal/domain/repository"
	"go.uber.org/fx"
)

// Module provides authentication primitives via fx. The PasswordHasher used by
// the strategy is supplied by the worker pool.
var Module = fx.Options(
	fx.Provide(newBcryptHasher),
	fx.Provide(newSigner),
	fx.Provide(newLocalStrategy),
	fx.Provide(NewGate),
)

type hasherParams struct {
	fx.In

	Config *config.Config
}

func newBcryptHasher(p hasherParams) *BcryptHasher {
	return NewBcryptHasher(p.Config.BcryptCost)
}

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSigner(p signerParams) *HMACSigner {
	return NewHMACSigner(p.Config.SessionSecret)
}

type strategyParams struct {
	fx.In

	Users  repository.UserRepository
	Hasher PasswordHasher
}

func newLocalStrategy(p strategyParams) *LocalStrategy {
	return NewLocalStrategy(p.Users, p.Hasher)
}
