package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

// MemoryStore keeps sessions in process memory. Sessions are lost on restart
// and are not shared between instances.
type MemoryStore struct {
	cache *bigcache.BigCache
	now   func() time.Time
}

// NewMemoryStore creates MemoryStore evicting entries after ttl.
func NewMemoryStore(ttl time.Duration) (*MemoryStore, error) {
	cfg := bigcache.DefaultConfig(ttl)
	cfg.Shards = 64
	cfg.Verbose = false
	cfg.CleanWindow = time.Minute
	if ttl < cfg.CleanWindow {
		cfg.CleanWindow = ttl
	}
	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache, now: time.Now}, nil
}

// Save stores the session until its expiry.
func (s *MemoryStore) Save(ctx context.Context, session *model.Session) error {
	payload, err := encode(session)
	if err != nil {
		return err
	}
	return s.cache.Set(session.ID, payload)
}

// Get returns the live session stored under id.
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Session, error) {
	payload, err := s.cache.Get(id)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, domainErrors.ErrSessionNotFound
		}
		return nil, err
	}
	session, err := decode(payload)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.cache.Delete(id)
		return nil, domainErrors.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session; missing ids are ignored.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(id); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return err
	}
	return nil
}

// Len reports the number of cached sessions.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

// Close stops the background cleaner.
func (s *MemoryStore) Close() error {
	return s.cache.Close()
}

var _ repository.SessionStore = (*MemoryStore)(nil)
