package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/ports"
)

type stubAuditRepo struct {
	mu      sync.Mutex
	records []ports.NavigationRecord
	fail    bool
}

func (r *stubAuditRepo) InsertNavigation(_ context.Context, rec *ports.NavigationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("insert failed")
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubAuditRepo) snapshot() []ports.NavigationRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.NavigationRecord(nil), r.records...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_PreservesPerSessionOrder(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := uint64(1); i <= 50; i++ {
		if !d.Enqueue(ports.NavigationRecord{SessionID: "sid-a", Sequence: i}) {
			t.Fatalf("record %d dropped", i)
		}
		d.Enqueue(ports.NavigationRecord{SessionID: "sid-b", Sequence: i})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == 100 })

	var last uint64
	for _, rec := range repo.snapshot() {
		if rec.SessionID != "sid-a" {
			continue
		}
		if rec.Sequence <= last {
			t.Fatalf("out of order: %d after %d", rec.Sequence, last)
		}
		last = rec.Sequence
	}

	cancel()
	d.Wait()
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	dropped := 0
	d.OnDrop(func() { dropped++ })

	// not started: the buffer fills up
	for i := 0; i < channelBuffer; i++ {
		if !d.Enqueue(ports.NavigationRecord{SessionID: "s"}) {
			t.Fatalf("unexpected drop at %d", i)
		}
	}
	if d.Enqueue(ports.NavigationRecord{SessionID: "s"}) {
		t.Fatalf("expected drop when buffer is full")
	}
	if dropped != 1 {
		t.Fatalf("expected 1 drop, got %d", dropped)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(0, &stubAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if d.shardIndex("abc") != d.shardIndex("abc") {
		t.Fatalf("shard index must be deterministic")
	}
}

func TestDispatcher_WriteFailureKeepsWorkerAlive(t *testing.T) {
	repo := &stubAuditRepo{fail: true}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(ports.NavigationRecord{SessionID: "s", Sequence: 1})
	time.Sleep(20 * time.Millisecond)

	repo.mu.Lock()
	repo.fail = false
	repo.mu.Unlock()
	d.Enqueue(ports.NavigationRecord{SessionID: "s", Sequence: 2})

	waitFor(t, func() bool {
		for _, rec := range repo.snapshot() {
			if rec.Sequence == 2 {
				return true
			}
		}
		return false
	})
	cancel()
	d.Wait()
}
