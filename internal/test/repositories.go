package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests. Login ids are unique the
// same way the database constraint makes them.
type UserRepositoryStub struct {
	mu      sync.Mutex
	byLogin map[string]*model.User
	byID    map[uuid.UUID]*model.User
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		byLogin: make(map[string]*model.User),
		byID:    make(map[uuid.UUID]*model.User),
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.byLogin[user.LoginID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *user
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.byLogin[stored.LoginID] = &stored
	s.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, loginID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.byLogin[loginID]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.byID[id]; ok {
		out := *user
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

// SetMember flips the membership flag on.
func (s *UserRepositoryStub) SetMember(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.byID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Member = true
	return nil
}

// Count returns the number of stored users.
func (s *UserRepositoryStub) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// MessageRepositoryStub keeps messages in insertion order and resolves authors
// from an optional user stub.
type MessageRepositoryStub struct {
	mu       sync.Mutex
	messages []model.Message
	Users    *UserRepositoryStub
	Err      error
}

// NewMessageRepositoryStub creates MessageRepositoryStub bound to users.
func NewMessageRepositoryStub(users *UserRepositoryStub) *MessageRepositoryStub {
	return &MessageRepositoryStub{Users: users}
}

// Create appends message to the in-memory board.
func (s *MessageRepositoryStub) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *msg
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	s.messages = append(s.messages, stored)
	out := stored
	return &out, nil
}

// ListWithAuthors returns messages ordered by creation time, then insertion.
func (s *MessageRepositoryStub) ListWithAuthors(ctx context.Context) ([]model.BoardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	entries := make([]model.BoardEntry, 0, len(s.messages))
	for _, msg := range s.messages {
		entry := model.BoardEntry{Message: msg}
		if s.Users != nil {
			if user, err := s.Users.GetByID(ctx, msg.AuthorID); err == nil {
				entry.Author = &model.Author{ID: user.ID, FirstName: user.FirstName, LastName: user.LastName}
			}
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.MessageRepository = (*MessageRepositoryStub)(nil)
)
