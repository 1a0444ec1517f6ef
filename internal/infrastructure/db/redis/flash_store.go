package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

const flashTTL = 10 * time.Minute

// FlashStore queues notices per session in a Redis list.
// Key format: flash:<session_id>
type FlashStore struct {
	client *redis.Client
}

// NewFlashStore creates a FlashStore wrapping the given Redis client.
func NewFlashStore(client *redis.Client) *FlashStore {
	return &FlashStore{client: client}
}

func (f *FlashStore) Push(ctx context.Context, sessionID string, n domain.Notice) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	key := flashKey(sessionID)
	_, err = f.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, b)
		p.Expire(ctx, key, flashTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push notice: %w", err)
	}
	return nil
}

func (f *FlashStore) Pop(ctx context.Context, sessionID string) ([]domain.Notice, error) {
	key := flashKey(sessionID)
	var lr *redis.StringSliceCmd
	_, err := f.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		lr = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("pop notices: %w", err)
	}
	return decodeNotices(lr.Val())
}

func decodeNotices(raw []string) ([]domain.Notice, error) {
	notices := make([]domain.Notice, 0, len(raw))
	for _, r := range raw {
		var n domain.Notice
		if err := json.Unmarshal([]byte(r), &n); err != nil {
			return nil, fmt.Errorf("decode notice: %w", err)
		}
		notices = append(notices, n)
	}
	return notices, nil
}

func flashKey(sessionID string) string {
	return "flash:" + sessionID
}
