package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sequencer numbers navigations per stream with INCR.
// Key format: nav:seq:<session_id>/<tab_id>
type Sequencer struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSequencer creates a Sequencer; counters expire ttl after the last navigation.
func NewSequencer(client *redis.Client, ttl time.Duration) *Sequencer {
	return &Sequencer{client: client, ttl: ttl}
}

func (s *Sequencer) Next(ctx context.Context, stream string) (uint64, error) {
	key := seqKey(stream)
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		p.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("next navigation sequence: %w", err)
	}
	return uint64(incr.Val()), nil
}

func (s *Sequencer) Current(ctx context.Context, stream string) (uint64, error) {
	n, err := s.client.Get(ctx, seqKey(stream)).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current navigation sequence: %w", err)
	}
	return n, nil
}

func seqKey(stream string) string {
	return "nav:seq:" + stream
}
