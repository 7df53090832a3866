package repository

import (
	"context"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

// SessionStore keeps server-side sessions. Get returns ErrSessionNotFound for
// unknown or expired ids; Delete succeeds for unknown ids.
type SessionStore interface {
	Save(ctx context.Context, session *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
