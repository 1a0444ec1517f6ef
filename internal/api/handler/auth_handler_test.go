package handler

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

type stubSessions struct {
	loginFn    func(ctx context.Context, creds domain.Credentials) (string, error)
	registerFn func(ctx context.Context, info domain.RegisterInfo) error
	recoverFn  func(ctx context.Context, info domain.RecoveryInfo) error
	loggedOut  bool
}

func (s *stubSessions) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	return s.loginFn(ctx, creds)
}

func (s *stubSessions) Logout(context.Context) { s.loggedOut = true }

func (s *stubSessions) Register(ctx context.Context, info domain.RegisterInfo) error {
	return s.registerFn(ctx, info)
}

func (s *stubSessions) RecoverAccount(ctx context.Context, info domain.RecoveryInfo) error {
	return s.recoverFn(ctx, info)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewLogin))
	stub := &stubSessions{
		loginFn: func(_ context.Context, creds domain.Credentials) (string, error) {
			if creds.Username != "Alice" || creds.Password != "secret" {
				t.Fatalf("unexpected credentials: %+v", creds)
			}
			if f.rotations != 1 {
				t.Fatalf("the session must be replaced before the backend login runs")
			}
			return "Bearer", nil
		},
	}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/login", url.Values{"username": {"Alice"}, "password": {"secret"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathDashboard)
	if got := f.flash.last(t); got.Title != f.notices.Notice(i18n.LoginSuccess).Title {
		t.Fatalf("unexpected notice: %+v", got)
	}
}

func TestAuthHandler_Login_InactiveAccount(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewLogin))
	stub := &stubSessions{
		loginFn: func(context.Context, domain.Credentials) (string, error) {
			return "", &domain.CommandError{Command: "account_login", Status: http.StatusBadRequest,
				Code: domain.CodeUnauthorizedClient, Message: "account not active"}
		},
	}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/login", url.Values{"username": {"bob"}, "password": {"pw"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathLogin)
	if got := f.flash.last(t); got.Title != f.notices.Notice(i18n.AccountInactive).Title {
		t.Fatalf("expected inactive account notice, got %+v", got)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewLogin))
	stub := &stubSessions{
		loginFn: func(context.Context, domain.Credentials) (string, error) {
			return "", &domain.CommandError{Command: "account_login", Status: http.StatusUnauthorized, Message: "Sai mật khẩu"}
		},
	}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/login", url.Values{"username": {"bob"}, "password": {"pw"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathLogin)
	got := f.flash.last(t)
	if got.Title != f.notices.Notice(i18n.LoginFailed).Title || got.Description != "Sai mật khẩu" {
		t.Fatalf("expected login failure with backend message, got %+v", got)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewLogin))
	stub := &stubSessions{
		loginFn: func(context.Context, domain.Credentials) (string, error) {
			t.Fatalf("login must not be attempted with an invalid form")
			return "", nil
		},
	}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/login", url.Values{"username": {"bob"}})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if f.rotations != 0 {
		t.Fatalf("an invalid form must keep the session")
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if f.renderer.name != screens.ViewLogin {
		t.Fatalf("expected login view, got %q", f.renderer.name)
	}
	if f.renderer.page.Error("password") == "" {
		t.Fatalf("expected password error, got %+v", f.renderer.page.Errors)
	}
	if f.renderer.page.Value("username") != "bob" {
		t.Fatalf("expected submitted username to be kept")
	}
	if len(f.nav.paths) != 1 || f.nav.paths[0] != screens.PathLogin {
		t.Fatalf("expected the login screen to be reloaded, got %v", f.nav.paths)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewLogin))
	stub := &stubSessions{}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/logout", url.Values{})
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if !stub.loggedOut {
		t.Fatalf("expected logout to reach the backend")
	}
	if f.rotations != 1 {
		t.Fatalf("expected the session to be replaced on logout, got %d rotations", f.rotations)
	}
	expectRedirect(t, rec, screens.PathLogin)
}

func validRegistration() url.Values {
	return url.Values{
		"username":         {"  Tenant_01 "},
		"email":            {"tenant@example.com"},
		"password":         {"Secret#123"},
		"confirm_password": {"Secret#123"},
		"type":             {"tenant"},
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewRegister))
	var got domain.RegisterInfo
	stub := &stubSessions{registerFn: func(_ context.Context, info domain.RegisterInfo) error {
		got = info
		return nil
	}}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/register", validRegistration())
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathLogin)
	if got.Username != "tenant_01" || got.Role != domain.RoleTenant {
		t.Fatalf("unexpected registration: %+v", got)
	}
}

func TestAuthHandler_Register_Rules(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"reserved username", "username", "Admin", "Tên đăng nhập không hợp lệ"},
		{"digits only", "username", "12345", "Tên đăng nhập không được chỉ chứa ký tự số"},
		{"underscores only", "username", "___", "Tên đăng nhập không được chỉ chứa dấu gạch dưới"},
		{"bad characters", "username", "an.nguyen", "Tên đăng nhập chỉ được chứa ký tự chữ cái, chữ số và dấu gạch dưới"},
		{"no special character", "password", "Secret1234", "Mật khẩu phải chứa ít nhất một ký tự đặc biệt"},
		{"no uppercase", "password", "secret#123", "Mật khẩu phải chứa ít nhất một chữ cái viết hoa"},
		{"confirmation mismatch", "confirm_password", "Other#123", "Mật khẩu xác nhận không khớp"},
		{"unknown type", "type", "admin", "Giá trị không hợp lệ"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, rendering(screens.ViewRegister))
			stub := &stubSessions{registerFn: func(context.Context, domain.RegisterInfo) error {
				t.Fatalf("register must not be attempted with an invalid form")
				return nil
			}}
			h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

			form := validRegistration()
			form.Set(tc.field, tc.value)
			if tc.field == "password" {
				form.Set("confirm_password", tc.value)
			}
			c, rec := f.request(http.MethodPost, "/register", form)
			if err := h.Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", rec.Code)
			}
			if got := f.renderer.page.Error(tc.field); got != tc.want {
				t.Fatalf("expected %q for %s, got %q", tc.want, tc.field, got)
			}
			if f.renderer.page.Value("password") != "" {
				t.Fatalf("passwords must not be echoed back")
			}
		})
	}
}

func TestAuthHandler_PasswordReset_RequiresEmailForEmailMethod(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewPasswordReset))
	stub := &stubSessions{recoverFn: func(context.Context, domain.RecoveryInfo) error {
		t.Fatalf("recovery must not be attempted with an invalid form")
		return nil
	}}
	h := NewAuthHandler(stub, f.screens, f.actions, f.rotate)

	c, rec := f.request(http.MethodPost, "/password-reset", url.Values{"method": {"email"}})
	if err := h.PasswordReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if f.renderer.page.Error("email") == "" {
		t.Fatalf("expected email error")
	}
}
