package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
)

// SessionUseCase creates, resolves and destroys server-side sessions. Tokens
// handed to clients are signed session ids.
type SessionUseCase struct {
	store  repository.SessionStore
	users  repository.UserRepository
	signer *pkgAuth.HMACSigner
	ttl    time.Duration
	now    func() time.Time
	newID  func() (string, error)
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(store repository.SessionStore, users repository.UserRepository, signer *pkgAuth.HMACSigner, ttl time.Duration) *SessionUseCase {
	return &SessionUseCase{
		store:  store,
		users:  users,
		signer: signer,
		ttl:    ttl,
		now:    time.Now,
		newID:  pkgAuth.NewSessionID,
	}
}

// TTL returns the absolute session lifetime.
func (u *SessionUseCase) TTL() time.Duration {
	return u.ttl
}

// Create starts a session for identity and returns the signed token.
func (u *SessionUseCase) Create(ctx context.Context, identity *model.Identity) (string, error) {
	if identity == nil {
		return "", domainErrors.ErrUnauthorized
	}
	id, err := u.newID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w: %w", domainErrors.ErrInternal, err)
	}
	now := u.now()
	session := &model.Session{
		ID:        id,
		UserID:    identity.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(u.ttl),
	}
	if err := u.store.Save(ctx, session); err != nil {
		return "", fmt.Errorf("save session: %w: %w", domainErrors.ErrInternal, err)
	}
	return u.signer.Sign(id), nil
}

// Resolve returns the current identity for token. The user is re-read on every
// call so membership changes are visible immediately.
func (u *SessionUseCase) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, domainErrors.ErrSessionNotFound
	}
	id, err := u.signer.Verify(token)
	if err != nil {
		return nil, domainErrors.ErrSessionNotFound
	}
	session, err := u.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load session: %w: %w", domainErrors.ErrInternal, err)
	}
	if session.Expired(u.now()) {
		_ = u.store.Delete(ctx, id)
		return nil, domainErrors.ErrSessionNotFound
	}
	user, err := u.users.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			_ = u.store.Delete(ctx, id)
			return nil, domainErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session user: %w", err)
	}
	return user.Identity(), nil
}

// Destroy ends the session. Unknown and malformed tokens are ignored.
func (u *SessionUseCase) Destroy(ctx context.Context, token string) error {
	id, err := u.signer.Verify(token)
	if err != nil {
		return nil
	}
	if err := u.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w: %w", domainErrors.ErrInternal, err)
	}
	return nil
}
