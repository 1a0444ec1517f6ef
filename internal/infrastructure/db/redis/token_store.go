package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

const (
	fieldAccess  = "access"
	fieldRefresh = "refresh"
	fieldBackend = "backend"
)

// TokenStore keeps backend credentials per portal session in a Redis hash.
// Key format: session:<session_id>. The hash expires ttl after its last write.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

func (s *TokenStore) Tokens(ctx context.Context, sessionID string) (ports.SessionTokens, error) {
	vals, err := s.client.HMGet(ctx, sessionKey(sessionID), fieldAccess, fieldRefresh).Result()
	if err != nil {
		return ports.SessionTokens{}, fmt.Errorf("load tokens: %w", err)
	}
	access, _ := vals[0].(string)
	refresh, _ := vals[1].(string)
	if access == "" {
		return ports.SessionTokens{}, domain.ErrNotAuthenticated
	}
	return ports.SessionTokens{Access: access, Refresh: refresh}, nil
}

func (s *TokenStore) SaveTokens(ctx context.Context, sessionID string, t ports.SessionTokens) error {
	key := sessionKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, fieldAccess, t.Access, fieldRefresh, t.Refresh)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	return nil
}

// DeleteTokens forgets the credentials but keeps the session preferences.
func (s *TokenStore) DeleteTokens(ctx context.Context, sessionID string) error {
	if err := s.client.HDel(ctx, sessionKey(sessionID), fieldAccess, fieldRefresh).Err(); err != nil {
		return fmt.Errorf("delete tokens: %w", err)
	}
	return nil
}

func (s *TokenStore) BackendURL(ctx context.Context, sessionID string) (string, error) {
	u, err := s.client.HGet(ctx, sessionKey(sessionID), fieldBackend).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load backend url: %w", err)
	}
	return u, nil
}

// SetBackendURL stores a backend override; "" restores the default.
func (s *TokenStore) SetBackendURL(ctx context.Context, sessionID, url string) error {
	key := sessionKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if url == "" {
			p.HDel(ctx, key, fieldBackend)
			return nil
		}
		p.HSet(ctx, key, fieldBackend, url)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save backend url: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}
