package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
)

type stubAuthorizer struct {
	authorizeFn func(ctx context.Context, path string) (*domain.BasicUserInfo, *navigation.Redirect, error)
}

func (s *stubAuthorizer) Authorize(ctx context.Context, path string) (*domain.BasicUserInfo, *navigation.Redirect, error) {
	return s.authorizeFn(ctx, path)
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

func TestGuard_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/fees/info/7/delete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("feeId")
	c.SetParamValues("7")

	user := &domain.BasicUserInfo{ID: 1, Role: domain.RoleManager}
	var authorized string
	a := &stubAuthorizer{authorizeFn: func(_ context.Context, path string) (*domain.BasicUserInfo, *navigation.Redirect, error) {
		authorized = path
		return user, nil, nil
	}}

	called := false
	mw := Guard(a, newMemFlash(), zerolog.Nop(), ScreenPath("/dashboard/fees/info/:feeId"))
	handler := mw(func(c echo.Context) error {
		called = true
		if Identity(c) != user {
			t.Fatalf("identity not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if authorized != "/dashboard/fees/info/7" {
		t.Fatalf("expected screen path to be authorized, got %q", authorized)
	}
}

func TestGuard_Redirects(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/dashboard/fees", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ctxSessionID, "sid-1")

	denied := domain.Notice{Title: "Không có quyền truy cập", Variant: domain.NoticeDestructive}
	a := &stubAuthorizer{authorizeFn: func(context.Context, string) (*domain.BasicUserInfo, *navigation.Redirect, error) {
		return nil, &navigation.Redirect{To: "/dashboard", Notice: &denied}, nil
	}}
	flash := newMemFlash()

	mw := Guard(a, flash, zerolog.Nop(), ScreenPath("/dashboard/fees"))
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}
	if got := flash.notices["sid-1"]; len(got) != 1 || got[0].Title != denied.Title {
		t.Fatalf("expected denial notice to be flashed, got %+v", got)
	}
}

func TestGuard_UnknownScreen(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/nope", nil), httptest.NewRecorder())

	a := &stubAuthorizer{authorizeFn: func(_ context.Context, path string) (*domain.BasicUserInfo, *navigation.Redirect, error) {
		return nil, nil, navigation.ErrNoRoute
	}}
	handler := Guard(a, newMemFlash(), zerolog.Nop(), ScreenPath("/nope"))(func(echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != echo.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
