package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/polkiloo/membersonly/internal/domain/errors"
	"github.com/polkiloo/membersonly/internal/domain/model"
	"github.com/polkiloo/membersonly/internal/domain/repository"
)

const sessionKeyPrefix = "session:"

// RedisStore keeps sessions in Redis with a key TTL matching the session expiry.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

// NewRedisStore wraps an existing client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

// DialRedis parses url, connects and verifies the server is reachable.
func DialRedis(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(rdb), nil
}

// Save stores the session; already expired sessions are not written.
func (s *RedisStore) Save(ctx context.Context, session *model.Session) error {
	var ttl time.Duration
	if !session.ExpiresAt.IsZero() {
		ttl = session.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	payload, err := encode(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(session.ID), payload, ttl).Err()
}

// Get returns the live session stored under id.
func (s *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrSessionNotFound
		}
		return nil, err
	}
	session, err := decode(data)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, domainErrors.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes the session; missing ids are ignored.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

var _ repository.SessionStore = (*RedisStore)(nil)
