package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ridwanfathin/invoice-explorer-service/internal/engine"
)

const sessionKeyPrefix = "invoice-explorer:session:"

// RedisSessionRepository stores sessions as JSON values with a key TTL
type RedisSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepository creates a Redis-backed session repository
func NewRedisSessionRepository(client *redis.Client, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// GetSession loads a session by ID
func (r *RedisSessionRepository) GetSession(ctx context.Context, sessionID string) (*engine.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, &RepositoryError{Op: "get_session", Err: ErrSessionNotFound}
		}
		return nil, &RepositoryError{Op: "get_session", Err: err}
	}

	var session engine.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, &RepositoryError{Op: "get_session", Err: err}
	}
	return &session, nil
}

// SaveSession stores the session and refreshes its expiry
func (r *RedisSessionRepository) SaveSession(ctx context.Context, session *engine.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return &RepositoryError{Op: "save_session", Err: err}
	}

	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, sessionKey(session.ID), data, ttl).Err(); err != nil {
		return &RepositoryError{Op: "save_session", Err: err}
	}
	return nil
}

// DeleteSession removes a session
func (r *RedisSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return &RepositoryError{Op: "delete_session", Err: err}
	}
	return nil
}
