package navigation

import (
	"context"
	"sync"
)

// MemorySequencer is a process-local ports.Sequencer.
type MemorySequencer struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{seqs: make(map[string]uint64)}
}

func (s *MemorySequencer) Next(_ context.Context, stream string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[stream]++
	return s.seqs[stream], nil
}

func (s *MemorySequencer) Current(_ context.Context, stream string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[stream], nil
}
