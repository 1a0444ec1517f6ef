// Package session carries the portal session identity through a context.
package session

import "context"

type (
	ctxKey       struct{}
	requestIDKey struct{}
	tabKey       struct{}
)

// WithID returns a copy of ctx bound to the portal session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// ID returns the portal session id bound to ctx, or "" when there is none.
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID returns a copy of ctx bound to the id of the current request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id bound to ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithTab returns a copy of ctx bound to the browser tab the request came from.
func WithTab(ctx context.Context, tab string) context.Context {
	return context.WithValue(ctx, tabKey{}, tab)
}

// Tab returns the tab id bound to ctx, or "" when the client sent none.
func Tab(ctx context.Context) string {
	tab, _ := ctx.Value(tabKey{}).(string)
	return tab
}

// StreamKey names the navigation stream of ctx: one per session and tab.
// It is "" unless both are known.
func StreamKey(ctx context.Context) string {
	sid, tab := ID(ctx), Tab(ctx)
	if sid == "" || tab == "" {
		return ""
	}
	return sid + "/" + tab
}
