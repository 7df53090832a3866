package usecase

import (
	"github.com/polkiloo/membersonly/internal/config"
	"github.com/polkiloo/membersonly/internal/domain/repository"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
	"go.uber.org/fx"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewValidator,
	newSessionUseCase,
	newAuthUseCase,
	NewMessageUseCase,
	NewMembershipUseCase,
)

type sessionParams struct {
	fx.In

	Store  repository.SessionStore
	Users  repository.UserRepository
	Signer *pkgAuth.HMACSigner
	Config *config.Config
}

func newSessionUseCase(p sessionParams) *SessionUseCase {
	return NewSessionUseCase(p.Store, p.Users, p.Signer, p.Config.SessionTTL)
}

type authParams struct {
	fx.In

	Users     repository.UserRepository
	Hasher    pkgAuth.PasswordHasher
	Strategy  *pkgAuth.LocalStrategy
	Sessions  *SessionUseCase
	Validator *Validator
}

func newAuthUseCase(p authParams) *AuthUseCase {
	return NewAuthUseCase(p.Users, p.Hasher, p.Strategy, p.Sessions, p.Validator)
}
