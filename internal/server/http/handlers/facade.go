package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	SignUp(ctx context.Context, draft model.SignUpDraft) (*model.Identity, error)
	LogIn(ctx context.Context, loginID, password string) (string, *model.Identity, error)
	LogOut(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*model.Identity, error)
}

// BoardFacade exposes the message board.
type BoardFacade interface {
	Board(ctx context.Context, viewer *model.Identity) ([]model.BoardEntry, error)
	PostMessage(ctx context.Context, author *model.Identity, title, text string) (*model.Message, error)
}

// MembershipFacade elevates accounts.
type MembershipFacade interface {
	Join(ctx context.Context, identity *model.Identity, target uuid.UUID) error
}

// HealthFacade reports backing storage health.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// MembersFacade aggregates the full set of operations used across handlers.
type MembersFacade interface {
	AuthFacade
	BoardFacade
	MembershipFacade
	HealthFacade
}
