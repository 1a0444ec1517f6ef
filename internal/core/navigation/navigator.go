package navigation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/pkg/session"
)

// Resolver yields the identity of the current session, or false when there
// is no valid session. It must never fail loudly.
type Resolver interface {
	Identify(ctx context.Context) (*domain.BasicUserInfo, bool)
}

// Observer is notified of every settled navigation.
type Observer interface {
	Observe(ctx context.Context, out Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, out Outcome)

func (f ObserverFunc) Observe(ctx context.Context, out Outcome) { f(ctx, out) }

// Redirect is a navigation to another route instead of rendering.
type Redirect struct {
	To     string
	Notice *domain.Notice
}

// NavRequest is one navigation attempt.
type NavRequest struct {
	Path  string
	Query url.Values
}

// Outcome is the settled result of a navigation. Exactly one of Data (for
// Rendered) or Redirect (for Redirected) is meaningful.
type Outcome struct {
	State    State
	Route    *Route
	Params   map[string]string
	Identity *domain.BasicUserInfo
	Data     any
	Redirect *Redirect
	Trace    []State
	Sequence uint64
	Elapsed  time.Duration
	// Err is the loader error behind a load failure redirect.
	Err error
}

func (o *Outcome) to(s State) {
	if !CanTransition(o.State, s) {
		panic(fmt.Sprintf("navigation: illegal transition %s -> %s", o.State, s))
	}
	o.State = s
	o.Trace = append(o.Trace, s)
}

// Config holds the canonical redirect targets and notices.
type Config struct {
	LoginPath     string
	HomePath      string
	LoginRequired domain.Notice
	AccessDenied  domain.Notice
	// LoadFailed is used for routes that declare no notice of their own.
	LoadFailed domain.Notice
}

// Navigator runs the guard chain and the loader of a route.
type Navigator struct {
	tree      *Tree
	resolver  Resolver
	seq       ports.Sequencer
	cfg       Config
	observers []Observer
	log       zerolog.Logger
}

// NewNavigator creates a Navigator. seq may be nil, in which case stale
// navigations are never discarded.
func NewNavigator(tree *Tree, resolver Resolver, seq ports.Sequencer, cfg Config, log zerolog.Logger, observers ...Observer) *Navigator {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/dashboard"
	}
	return &Navigator{
		tree:      tree,
		resolver:  resolver,
		seq:       seq,
		cfg:       cfg,
		observers: observers,
		log:       log,
	}
}

// Tree returns the route tree the navigator serves.
func (n *Navigator) Tree() *Tree { return n.tree }

// Navigate evaluates the guards of every route from the root to the target,
// then runs the target's loader. Guard and load failures are reported as a
// Redirected outcome; the only error is ErrNoRoute.
func (n *Navigator) Navigate(ctx context.Context, req NavRequest) (Outcome, error) {
	m, ok := n.tree.Match(req.Path)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoRoute, req.Path)
	}

	start := time.Now()
	leaf := m.Leaf()
	out := Outcome{State: Idle, Route: leaf, Params: m.Params, Trace: []State{Idle}}
	out.Sequence = n.begin(ctx)

	out.to(GuardEvaluating)
	identity, redirect, fetched := n.guard(ctx, m.Chain)
	if fetched && n.stale(ctx, out.Sequence) {
		out.to(Discarded)
		return n.settle(ctx, out, start), nil
	}
	if redirect != nil {
		out.to(GuardFailed)
		out.Redirect = redirect
		out.to(Redirected)
		return n.settle(ctx, out, start), nil
	}
	out.Identity = identity
	out.to(GuardPassed)

	if leaf.Loader == nil {
		out.to(Rendered)
		return n.settle(ctx, out, start), nil
	}

	out.to(Loading)
	data, err := leaf.Loader(ctx, Request{
		Path:     req.Path,
		Params:   m.Params,
		Query:    req.Query,
		Identity: identity,
	})
	if n.stale(ctx, out.Sequence) {
		out.to(Discarded)
		return n.settle(ctx, out, start), nil
	}
	if err != nil {
		out.to(LoadFailed)
		out.Err = err
		out.Redirect = n.loadFailure(leaf, err)
		out.to(Redirected)
		return n.settle(ctx, out, start), nil
	}

	out.Data = data
	out.to(LoadSucceeded)
	out.to(Rendered)
	return n.settle(ctx, out, start), nil
}

// Authorize runs only the guard chain of the route at path. Mutating entry
// points use it so that no screen action bypasses its screen's guards.
func (n *Navigator) Authorize(ctx context.Context, path string) (*domain.BasicUserInfo, *Redirect, error) {
	m, ok := n.tree.Match(path)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoRoute, path)
	}
	identity, redirect, _ := n.guard(ctx, m.Chain)
	return identity, redirect, nil
}

// guard evaluates the chain top-down. The identity is fetched at most once
// and only when a route requires a session.
func (n *Navigator) guard(ctx context.Context, chain []*Route) (*domain.BasicUserInfo, *Redirect, bool) {
	var (
		identity *domain.BasicUserInfo
		fetched  bool
	)
	identify := func() (*domain.BasicUserInfo, bool) {
		if !fetched {
			fetched = true
			if u, ok := n.resolver.Identify(ctx); ok {
				identity = u
			}
		}
		return identity, identity != nil
	}

	for _, r := range chain {
		if r.Access.IsPublic() {
			continue
		}
		u, ok := identify()
		if !ok {
			notice := n.cfg.LoginRequired
			return nil, &Redirect{To: n.cfg.LoginPath, Notice: &notice}, fetched
		}
		if !r.Access.Allows(u.Role) {
			to := r.DeniedTo
			if to == "" {
				to = n.cfg.HomePath
			}
			notice := n.cfg.AccessDenied
			return nil, &Redirect{To: to, Notice: &notice}, fetched
		}
	}
	return identity, nil, fetched
}

func (n *Navigator) loadFailure(r *Route, err error) *Redirect {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		notice := n.cfg.LoginRequired
		return &Redirect{To: n.cfg.LoginPath, Notice: &notice}
	}

	to := r.Fallback
	if to == "" {
		to = n.cfg.HomePath
	}
	notice := n.cfg.LoadFailed
	if r.Notice != nil {
		notice = *r.Notice
	}

	var f *Failure
	if errors.As(err, &f) {
		if f.To != "" {
			to = f.To
		}
		if f.Notice != nil {
			notice = *f.Notice
		}
	}
	return &Redirect{To: to, Notice: &notice}
}

func (n *Navigator) begin(ctx context.Context) uint64 {
	stream := session.StreamKey(ctx)
	if n.seq == nil || stream == "" {
		return 0
	}
	seq, err := n.seq.Next(ctx, stream)
	if err != nil {
		n.log.Warn().Err(err).Str("stream", stream).Msg("navigation sequence unavailable")
		return 0
	}
	return seq
}

func (n *Navigator) stale(ctx context.Context, seq uint64) bool {
	if seq == 0 {
		return false
	}
	cur, err := n.seq.Current(ctx, session.StreamKey(ctx))
	if err != nil {
		return false
	}
	return cur > seq
}

func (n *Navigator) settle(ctx context.Context, out Outcome, start time.Time) Outcome {
	out.Elapsed = time.Since(start)

	ev := n.log.Debug()
	if out.State == Redirected && out.Err != nil {
		ev = n.log.Warn().Err(out.Err)
	}
	ev = ev.Str("route", out.Route.Pattern()).
		Str("state", out.State.String()).
		Uint64("seq", out.Sequence)
	if out.Redirect != nil {
		ev = ev.Str("redirect", out.Redirect.To)
	}
	ev.Msg("navigation settled")

	for _, o := range n.observers {
		o.Observe(ctx, out)
	}
	return out
}
