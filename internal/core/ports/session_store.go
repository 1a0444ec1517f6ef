package ports

import (
	"context"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

// SessionTokens is the backend credential pair held for one portal session.
type SessionTokens struct {
	Access  string `json:"access_token"`
	Refresh string `json:"refresh_token"`
}

// TokenStore keeps the backend credentials and preferences of each portal
// session. Tokens returns domain.ErrNotAuthenticated when none are held.
type TokenStore interface {
	Tokens(ctx context.Context, sessionID string) (SessionTokens, error)
	SaveTokens(ctx context.Context, sessionID string, tokens SessionTokens) error
	DeleteTokens(ctx context.Context, sessionID string) error

	// BackendURL returns "" when the session uses the default backend.
	BackendURL(ctx context.Context, sessionID string) (string, error)
	SetBackendURL(ctx context.Context, sessionID, url string) error
}

// FlashStore queues transient notices until the next rendered screen.
type FlashStore interface {
	Push(ctx context.Context, sessionID string, notice domain.Notice) error
	// Pop returns and clears the pending notices in insertion order.
	Pop(ctx context.Context, sessionID string) ([]domain.Notice, error)
}

// Sequencer hands out monotonically increasing navigation numbers per
// navigation stream (a session and one of its tabs).
type Sequencer interface {
	Next(ctx context.Context, stream string) (uint64, error)
	Current(ctx context.Context, stream string) (uint64, error)
}
