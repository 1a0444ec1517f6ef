package ports

import (
	"context"
	"time"
)

// NavigationRecord is one terminal navigation outcome kept for auditing.
type NavigationRecord struct {
	SessionID  string
	RequestID  string
	Path       string
	State      string
	Role       string
	Redirect   string
	Sequence   uint64
	Duration   time.Duration
	OccurredAt time.Time
}

// AuditRepository persists navigation records.
type AuditRepository interface {
	InsertNavigation(ctx context.Context, record *NavigationRecord) error
}
