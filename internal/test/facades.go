package test

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

// AuthFacadeStub implements handlers.AuthFacade.
type AuthFacadeStub struct {
	SignUpFn  func(ctx context.Context, draft model.SignUpDraft) (*model.Identity, error)
	LogInFn   func(ctx context.Context, loginID, password string) (string, *model.Identity, error)
	LogOutFn  func(ctx context.Context, token string) error
	ResolveFn func(ctx context.Context, token string) (*model.Identity, error)
}

// SignUp delegates to SignUpFn or echoes the draft as a new identity.
func (s AuthFacadeStub) SignUp(ctx context.Context, draft model.SignUpDraft) (*model.Identity, error) {
	if s.SignUpFn != nil {
		return s.SignUpFn(ctx, draft)
	}
	return &model.Identity{ID: uuid.New(), FirstName: draft.FirstName, LastName: draft.LastName, LoginID: draft.Email}, nil
}

// LogIn delegates to LogInFn or returns the fixed token "token".
func (s AuthFacadeStub) LogIn(ctx context.Context, loginID, password string) (string, *model.Identity, error) {
	if s.LogInFn != nil {
		return s.LogInFn(ctx, loginID, password)
	}
	return "token", &model.Identity{ID: uuid.New(), LoginID: loginID}, nil
}

// LogOut delegates to LogOutFn.
func (s AuthFacadeStub) LogOut(ctx context.Context, token string) error {
	if s.LogOutFn != nil {
		return s.LogOutFn(ctx, token)
	}
	return nil
}

// Resolve delegates to ResolveFn; by default every token is anonymous.
func (s AuthFacadeStub) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return nil, nil
}

// BoardFacadeStub implements handlers.BoardFacade.
type BoardFacadeStub struct {
	BoardFn       func(ctx context.Context, viewer *model.Identity) ([]model.BoardEntry, error)
	PostMessageFn func(ctx context.Context, author *model.Identity, title, text string) (*model.Message, error)
}

// Board delegates to BoardFn.
func (s BoardFacadeStub) Board(ctx context.Context, viewer *model.Identity) ([]model.BoardEntry, error) {
	if s.BoardFn != nil {
		return s.BoardFn(ctx, viewer)
	}
	return nil, nil
}

// PostMessage delegates to PostMessageFn.
func (s BoardFacadeStub) PostMessage(ctx context.Context, author *model.Identity, title, text string) (*model.Message, error) {
	if s.PostMessageFn != nil {
		return s.PostMessageFn(ctx, author, title, text)
	}
	return &model.Message{ID: uuid.New(), Title: title, Text: text}, nil
}

// MembershipFacadeStub implements handlers.MembershipFacade.
type MembershipFacadeStub struct {
	JoinFn func(ctx context.Context, identity *model.Identity, target uuid.UUID) error
}

// Join delegates to JoinFn.
func (s MembershipFacadeStub) Join(ctx context.Context, identity *model.Identity, target uuid.UUID) error {
	if s.JoinFn != nil {
		return s.JoinFn(ctx, identity, target)
	}
	return nil
}

// HealthFacadeStub implements handlers.HealthFacade.
type HealthFacadeStub struct {
	Err error
}

// HealthCheck returns Err.
func (s HealthFacadeStub) HealthCheck(context.Context) error {
	return s.Err
}

// MembersFacadeStub aggregates all facade stubs.
type MembersFacadeStub struct {
	AuthFacadeStub
	BoardFacadeStub
	MembershipFacadeStub
	HealthFacadeStub
}
