package repository

import (
	"context"

	"github.com/polkiloo/membersonly/internal/domain/model"
)

// MessageRepository describes persistence operations for board messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) (*model.Message, error)
	ListWithAuthors(ctx context.Context) ([]model.BoardEntry, error)
}
