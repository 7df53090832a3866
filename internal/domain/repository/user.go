package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByLogin(ctx context.Context, loginID string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	SetMember(ctx context.Context, id uuid.UUID) error
}
