package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
)

// Authenticator verifies login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, loginID, password string) (*model.Identity, error)
}

// AuthUseCase handles sign-up, log-in and log-out.
type AuthUseCase struct {
	users     repository.UserRepository
	hasher    pkgAuth.PasswordHasher
	strategy  Authenticator
	sessions  *SessionUseCase
	validator *Validator
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy Authenticator, sessions *SessionUseCase, validator *Validator) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, strategy: strategy, sessions: sessions, validator: validator}
}

// SignUp registers a non-member account. It does not start a session.
func (u *AuthUseCase) SignUp(ctx context.Context, draft model.SignUpDraft) (*model.Identity, error) {
	clean := model.SignUpDraft{
		FirstName: strings.TrimSpace(draft.FirstName),
		LastName:  strings.TrimSpace(draft.LastName),
		Email:     model.NormalizeLoginID(draft.Email),
	}
	input := signUpInput{
		FirstName: clean.FirstName,
		LastName:  clean.LastName,
		Email:     clean.Email,
		Password:  draft.Password,
	}
	if err := u.validator.check(input, clean); err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(ctx, draft.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w: %w", domainErrors.ErrInternal, err)
	}

	user, err := u.users.Create(ctx, &model.User{
		FirstName:    clean.FirstName,
		LastName:     clean.LastName,
		LoginID:      clean.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return user.Identity(), nil
}

// LogIn authenticates credentials and opens a session.
func (u *AuthUseCase) LogIn(ctx context.Context, loginID, password string) (string, *model.Identity, error) {
	identity, err := u.strategy.Authenticate(ctx, loginID, password)
	if err != nil {
		return "", nil, err
	}
	token, err := u.sessions.Create(ctx, identity)
	if err != nil {
		return "", nil, err
	}
	return token, identity, nil
}

// LogOut destroys the session behind token.
func (u *AuthUseCase) LogOut(ctx context.Context, token string) error {
	return u.sessions.Destroy(ctx, token)
}
