package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

// dummyPassword is hashed once and compared against when the login id is
// unknown, so both failure paths cost one bcrypt comparison. A failed hash is
// not cached.
const dummyPassword = "membersonly-dummy-password"

// LocalStrategy verifies a login id and password against the credential store.
type LocalStrategy struct {
	users  repository.UserRepository
	hasher PasswordHasher

	dummyMu   sync.Mutex
	dummyHash string
}

// NewLocalStrategy creates LocalStrategy.
func NewLocalStrategy(users repository.UserRepository, hasher PasswordHasher) *LocalStrategy {
	return &LocalStrategy{users: users, hasher: hasher}
}

// Authenticate returns the identity for valid credentials. Unknown users fail
// with ErrUnknownUser and wrong passwords with ErrBadPassword; both render as
// invalid credentials.
func (s *LocalStrategy) Authenticate(ctx context.Context, loginID, password string) (*model.Identity, error) {
	user, err := s.users.GetByLogin(ctx, model.NormalizeLoginID(loginID))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			if err := s.burnComparison(ctx, password); err != nil {
				return nil, fmt.Errorf("verify password: %w: %w", domainErrors.ErrInternal, err)
			}
			return nil, domainErrors.ErrUnknownUser
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w: %w", domainErrors.ErrInternal, err)
	}
	if !ok {
		return nil, domainErrors.ErrBadPassword
	}
	return user.Identity(), nil
}

// Prime computes the dummy hash ahead of the first unknown-user login.
func (s *LocalStrategy) Prime(ctx context.Context) error {
	_, err := s.dummy(ctx)
	return err
}

func (s *LocalStrategy) dummy(ctx context.Context) (string, error) {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()
	if s.dummyHash != "" {
		return s.dummyHash, nil
	}
	hash, err := s.hasher.Hash(context.WithoutCancel(ctx), dummyPassword)
	if err != nil {
		return "", err
	}
	s.dummyHash = hash
	return hash, nil
}

// burnComparison fails whenever a real comparison would, so an unusable
// hasher looks the same for known and unknown login ids.
func (s *LocalStrategy) burnComparison(ctx context.Context, password string) error {
	hash, err := s.dummy(ctx)
	if err != nil {
		return err
	}
	_, err = s.hasher.Verify(ctx, password, hash)
	return err
}
