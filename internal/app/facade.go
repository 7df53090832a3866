package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/usecase"
)

// HealthChecker reports whether backing storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// MembersFacade exposes the use cases to the HTTP layer.
type MembersFacade struct {
	auth       *usecase.AuthUseCase
	sessions   *usecase.SessionUseCase
	messages   *usecase.MessageUseCase
	membership *usecase.MembershipUseCase
	health     HealthChecker
}

func NewMembersFacade(auth *usecase.AuthUseCase, sessions *usecase.SessionUseCase, messages *usecase.MessageUseCase, membership *usecase.MembershipUseCase, health HealthChecker) *MembersFacade {
	return &MembersFacade{auth: auth, sessions: sessions, messages: messages, membership: membership, health: health}
}

func (f *MembersFacade) SignUp(ctx context.Context, draft model.SignUpDraft) (*model.Identity, error) {
	return f.auth.SignUp(ctx, draft)
}

func (f *MembersFacade) LogIn(ctx context.Context, loginID, password string) (string, *model.Identity, error) {
	return f.auth.LogIn(ctx, loginID, password)
}

func (f *MembersFacade) LogOut(ctx context.Context, token string) error {
	return f.auth.LogOut(ctx, token)
}

func (f *MembersFacade) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	return f.sessions.Resolve(ctx, token)
}

func (f *MembersFacade) Board(ctx context.Context, viewer *model.Identity) ([]model.BoardEntry, error) {
	return f.messages.Board(ctx, viewer)
}

func (f *MembersFacade) PostMessage(ctx context.Context, author *model.Identity, title, text string) (*model.Message, error) {
	return f.messages.Create(ctx, author, title, text)
}

func (f *MembersFacade) Join(ctx context.Context, identity *model.Identity, target uuid.UUID) error {
	return f.membership.Join(ctx, identity, target)
}

func (f *MembersFacade) HealthCheck(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
