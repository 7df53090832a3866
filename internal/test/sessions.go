package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

// SessionStoreStub keeps sessions in a map and honours ExpiresAt.
type SessionStoreStub struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	Now      func() time.Time
	SaveErr  error
	GetErr   error
	Closed   bool
}

// NewSessionStoreStub creates an empty SessionStoreStub.
func NewSessionStoreStub() *SessionStoreStub {
	return &SessionStoreStub{sessions: make(map[string]model.Session)}
}

// Save stores the session.
func (s *SessionStoreStub) Save(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.sessions[session.ID] = *session
	return nil
}

// Get returns a live session or ErrSessionNotFound.
func (s *SessionStoreStub) Get(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	session, ok := s.sessions[id]
	if !ok || session.Expired(s.now()) {
		return nil, domainErrors.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes the session if present.
func (s *SessionStoreStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close marks the store closed.
func (s *SessionStoreStub) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = true
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (s *SessionStoreStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStoreStub) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var _ repository.SessionStore = (*SessionStoreStub)(nil)
