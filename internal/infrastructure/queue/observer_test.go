package queue

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/pkg/session"
)

func TestRecord_FromRedirectOutcome(t *testing.T) {
	tree, err := navigation.NewTree(&navigation.Route{Access: navigation.Public(), Children: []*navigation.Route{
		{Path: "dashboard", View: "dashboard", Access: navigation.Authenticated()},
	}})
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	route, _ := tree.Route("/dashboard")

	rec := Record("sid-1", navigation.Outcome{
		State:    navigation.Redirected,
		Route:    route,
		Identity: &domain.BasicUserInfo{Role: domain.RoleTenant},
		Redirect: &navigation.Redirect{To: "/login"},
		Sequence: 4,
		Elapsed:  time.Millisecond,
	})

	if rec.SessionID != "sid-1" || rec.Path != "/dashboard" || rec.Redirect != "/login" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Role != "tenant" || rec.Sequence != 4 || rec.State != navigation.Redirected.String() {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestObserve_SkipsAnonymousContext(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Observe(context.Background(), navigation.Outcome{State: navigation.Rendered})

	sctx := session.WithRequestID(session.WithID(context.Background(), "sid-2"), "req-1")
	d.Observe(sctx, navigation.Outcome{State: navigation.Rendered})

	waitFor(t, func() bool { return len(repo.snapshot()) == 1 })
	got := repo.snapshot()[0]
	if got.SessionID != "sid-2" || got.RequestID != "req-1" {
		t.Fatalf("unexpected record: %+v", got)
	}
}
