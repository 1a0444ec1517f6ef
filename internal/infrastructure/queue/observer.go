package queue

import (
	"context"
	"time"

	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/pkg/session"
)

// Observe implements navigation.Observer by enqueueing an audit record for
// every settled navigation that belongs to a session.
func (d *Dispatcher) Observe(ctx context.Context, out navigation.Outcome) {
	sid := session.ID(ctx)
	if sid == "" {
		return
	}
	rec := Record(sid, out)
	rec.RequestID = session.RequestID(ctx)
	d.Enqueue(rec)
}

// Record converts a navigation outcome into its audit form.
func Record(sessionID string, out navigation.Outcome) ports.NavigationRecord {
	rec := ports.NavigationRecord{
		SessionID:  sessionID,
		State:      out.State.String(),
		Sequence:   out.Sequence,
		Duration:   out.Elapsed,
		OccurredAt: time.Now().UTC(),
	}
	if out.Route != nil {
		rec.Path = out.Route.Pattern()
	}
	if out.Identity != nil {
		rec.Role = out.Identity.Role.String()
	}
	if out.Redirect != nil {
		rec.Redirect = out.Redirect.To
	}
	return rec
}
