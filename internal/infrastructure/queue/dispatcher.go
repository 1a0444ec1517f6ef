// Package queue fans navigation audit records out to a fixed set of workers.
package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit records to workers using consistent hashing on the
// session id, so the records of one session are written in order. Enqueue
// never blocks a request: records are dropped when a worker falls behind.
type Dispatcher struct {
	workers []chan ports.NavigationRecord
	repo    ports.AuditRepository
	log     zerolog.Logger
	wg      sync.WaitGroup
	onDrop  func()
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NavigationRecord, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NavigationRecord, channelBuffer)
	}
	return d
}

// OnDrop registers a callback invoked for every dropped record.
func (d *Dispatcher) OnDrop(fn func()) { d.onDrop = fn }

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has stopped.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Enqueue hands a record to the worker responsible for its session. It
// reports false when the record was dropped.
func (d *Dispatcher) Enqueue(rec ports.NavigationRecord) bool {
	select {
	case d.workers[d.shardIndex(rec.SessionID)] <- rec:
		return true
	default:
		d.log.Warn().Str("session_id", rec.SessionID).Str("path", rec.Path).Msg("audit queue full, record dropped")
		if d.onDrop != nil {
			d.onDrop()
		}
		return false
	}
}

// shardIndex maps a session id deterministically to a worker index.
func (d *Dispatcher) shardIndex(sessionID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NavigationRecord) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case rec, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.InsertNavigation(ctx, &rec); err != nil {
				d.log.Error().Err(err).
					Str("session_id", rec.SessionID).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
