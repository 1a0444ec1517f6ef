package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/api/view"
	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

const testSession = "sid-1"

type stubNavigator struct {
	navigateFn func(ctx context.Context, req navigation.NavRequest) (navigation.Outcome, error)
	paths      []string
}

func (s *stubNavigator) Navigate(ctx context.Context, req navigation.NavRequest) (navigation.Outcome, error) {
	s.paths = append(s.paths, req.Path)
	return s.navigateFn(ctx, req)
}

// rendering answers every navigation with a rendered screen.
func rendering(view string) *stubNavigator {
	return &stubNavigator{navigateFn: func(context.Context, navigation.NavRequest) (navigation.Outcome, error) {
		return navigation.Outcome{State: navigation.Rendered, Route: &navigation.Route{View: view}}, nil
	}}
}

type memFlash struct {
	notices map[string][]domain.Notice
}

func newMemFlash() *memFlash {
	return &memFlash{notices: map[string][]domain.Notice{}}
}

func (m *memFlash) Push(_ context.Context, sid string, n domain.Notice) error {
	m.notices[sid] = append(m.notices[sid], n)
	return nil
}

func (m *memFlash) Pop(_ context.Context, sid string) ([]domain.Notice, error) {
	out := m.notices[sid]
	delete(m.notices, sid)
	return out, nil
}

// last returns the most recent notice of the test session.
func (m *memFlash) last(t *testing.T) domain.Notice {
	t.Helper()
	got := m.notices[testSession]
	if len(got) == 0 {
		t.Fatalf("expected a flashed notice")
	}
	return got[len(got)-1]
}

type recordingRenderer struct {
	name string
	page view.Page
}

func (r *recordingRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.name = name
	r.page, _ = data.(view.Page)
	return nil
}

type invocation struct {
	name string
	args map[string]any
}

// stubCommands records invocations and answers from results, keyed by command.
type stubCommands struct {
	calls   []invocation
	results map[string]any
	errs    map[string]error
}

func (s *stubCommands) boundary() ports.CommandBoundary {
	return ports.CommandFunc(func(_ context.Context, name string, args any, out any) error {
		var decoded map[string]any
		if args != nil {
			raw, _ := json.Marshal(args)
			_ = json.Unmarshal(raw, &decoded)
		}
		s.calls = append(s.calls, invocation{name: name, args: decoded})
		if err := s.errs[name]; err != nil {
			return err
		}
		if res, ok := s.results[name]; ok && out != nil {
			raw, _ := json.Marshal(res)
			return json.Unmarshal(raw, out)
		}
		return nil
	})
}

func (s *stubCommands) called(name string) (invocation, bool) {
	for _, c := range s.calls {
		if c.name == name {
			return c, true
		}
	}
	return invocation{}, false
}

type fixture struct {
	e        *echo.Echo
	renderer *recordingRenderer
	flash    *memFlash
	nav      *stubNavigator
	notices  *i18n.Catalog
	screens  *ScreenHandler
	actions  Actions
	// rotations counts session rotations; the test session id is kept so
	// flashed notices stay observable.
	rotations int
}

func (f *fixture) rotate(c echo.Context) error {
	f.rotations++
	c.Set("session_id", testSession)
	return nil
}

func newFixture(t *testing.T, nav *stubNavigator) *fixture {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	r := &recordingRenderer{}
	e.Renderer = r

	flash := newMemFlash()
	notices := i18n.MustLoad()
	return &fixture{
		e:        e,
		renderer: r,
		flash:    flash,
		nav:      nav,
		notices:  notices,
		screens:  NewScreenHandler(nav, flash, zerolog.Nop()),
		actions:  NewActions(flash, notices, zerolog.Nop()),
	}
}

func (f *fixture) request(method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)
	c.Set("session_id", testSession)
	return c, rec
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, to string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != to {
		t.Fatalf("expected redirect to %q, got %q", to, loc)
	}
}
