package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
)

// MessageUseCase posts messages and renders the board.
type MessageUseCase struct {
	messages  repository.MessageRepository
	gate      *pkgAuth.Gate
	validator *Validator
	now       func() time.Time
}

// NewMessageUseCase constructs MessageUseCase.
func NewMessageUseCase(messages repository.MessageRepository, gate *pkgAuth.Gate, validator *Validator) *MessageUseCase {
	return &MessageUseCase{messages: messages, gate: gate, validator: validator, now: time.Now}
}

// Create validates and stores a message authored by author.
func (u *MessageUseCase) Create(ctx context.Context, author *model.Identity, title, text string) (*model.Message, error) {
	if err := u.gate.Authorize(author, model.ActionPostMessage, uuid.Nil); err != nil {
		return nil, err
	}
	draft := model.MessageDraft{Title: strings.TrimSpace(title), Text: strings.TrimSpace(text)}
	if err := u.validator.check(messageInput(draft), draft); err != nil {
		return nil, err
	}
	return u.messages.Create(ctx, &model.Message{
		Title:     draft.Title,
		Text:      draft.Text,
		AuthorID:  author.ID,
		CreatedAt: u.now().UTC(),
	})
}

// List returns all messages oldest first. Entries whose author cannot be
// resolved come back masked.
func (u *MessageUseCase) List(ctx context.Context) ([]model.BoardEntry, error) {
	entries, err := u.messages.ListWithAuthors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Author == nil {
			entries[i] = entries[i].Masked()
		}
	}
	return entries, nil
}

// Board is List as seen by viewer; author data is stripped for non-members.
func (u *MessageUseCase) Board(ctx context.Context, viewer *model.Identity) ([]model.BoardEntry, error) {
	entries, err := u.List(ctx)
	if err != nil {
		return nil, err
	}
	if u.gate.Allows(viewer, model.ActionViewAuthor, uuid.Nil) {
		return entries, nil
	}
	for i := range entries {
		entries[i] = entries[i].Masked()
	}
	return entries, nil
}

