package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/api/metrics"
	mongodb "github.com/bluemoon/resident-portal/internal/infrastructure/db/mongo"
	"github.com/bluemoon/resident-portal/internal/infrastructure/queue"
	"github.com/bluemoon/resident-portal/internal/pkg/config"
)

// audit is the running navigation audit trail.
type audit struct {
	dispatcher *queue.Dispatcher
	ping       func(ctx context.Context) error
	close      func()
}

// startAudit connects to MongoDB and starts the audit workers on workersCtx.
// close stops the workers before disconnecting.
func startAudit(ctx, workersCtx context.Context, cfg *config.Config, log zerolog.Logger) (*audit, error) {
	store, err := mongodb.Open(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: uint64(cfg.Audit.Workers) * 2,
	})
	if err != nil {
		return nil, err
	}

	repo := mongodb.NewAuditRepository(store.Database())
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("audit indexes not ensured")
	}

	workersCtx, cancel := context.WithCancel(workersCtx)
	d := queue.NewDispatcher(cfg.Audit.Workers, repo, log)
	d.OnDrop(metrics.AuditDroppedTotal.Inc)
	d.Start(workersCtx)
	log.Info().Int("workers", cfg.Audit.Workers).Str("db", cfg.Mongo.Database).Msg("navigation audit enabled")

	return &audit{
		dispatcher: d,
		ping:       store.Ping,
		close: func() {
			cancel()
			d.Wait()
			disconnectCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			if err := store.Close(disconnectCtx); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		},
	}, nil
}
