package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

func TestSessionResolver_Login_CaseFoldsUsername(t *testing.T) {
	cmd := newStubBoundary()
	cmd.results[ports.CmdAccountLogin] = `"Bearer"`
	r := NewSessionResolver(cmd, zerolog.Nop())

	token, err := r.Login(context.Background(), domain.Credentials{Username: "Alice", Password: "p@ss"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "Bearer" {
		t.Fatalf("unexpected token %q", token)
	}
	if len(cmd.calls) != 1 || cmd.calls[0].name != ports.CmdAccountLogin {
		t.Fatalf("expected one account_login call, got %+v", cmd.calls)
	}
	creds, ok := cmd.calls[0].args.(domain.Credentials)
	if !ok {
		t.Fatalf("unexpected args type %T", cmd.calls[0].args)
	}
	if creds.Username != "alice" {
		t.Fatalf("expected username alice, got %q", creds.Username)
	}
	if creds.Password != "p@ss" {
		t.Fatalf("password must be sent unchanged, got %q", creds.Password)
	}
}

func TestSessionResolver_Login_ReturnsBackendError(t *testing.T) {
	cmd := newStubBoundary()
	backendErr := &domain.CommandError{Command: ports.CmdAccountLogin, Status: 403, Code: domain.CodeUnactivatedAccount}
	cmd.errs[ports.CmdAccountLogin] = backendErr
	r := NewSessionResolver(cmd, zerolog.Nop())

	_, err := r.Login(context.Background(), domain.Credentials{Username: "bob", Password: "x"})
	if err != backendErr {
		t.Fatalf("expected backend error verbatim, got %v", err)
	}
	if !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive")
	}
}

func TestSessionResolver_DegradesToNegative(t *testing.T) {
	cmd := newStubBoundary()
	boom := errors.New("network down")
	for _, name := range []string{ports.CmdCheckToken, ports.CmdCheckAdmin, ports.CmdCheckManager, ports.CmdGetUserRole, ports.CmdGetUserInfo} {
		cmd.errs[name] = boom
	}
	r := NewSessionResolver(cmd, zerolog.Nop())
	ctx := context.Background()

	if r.IsAuthenticated(ctx) {
		t.Fatalf("expected false on failure")
	}
	if r.IsAdmin(ctx) || r.IsManager(ctx) {
		t.Fatalf("expected role checks to be false on failure")
	}
	if role, ok := r.GetRole(ctx); ok || role != domain.RoleUnknown {
		t.Fatalf("expected unknown role, got %v %v", role, ok)
	}
	if u, ok := r.Identify(ctx); ok || u != nil {
		t.Fatalf("expected no identity, got %+v", u)
	}
}

func TestSessionResolver_GetRole_NoCache(t *testing.T) {
	cmd := newStubBoundary()
	cmd.results[ports.CmdGetUserRole] = `"manager"`
	r := NewSessionResolver(cmd, zerolog.Nop())

	for i := 0; i < 2; i++ {
		role, ok := r.GetRole(context.Background())
		if !ok || role != domain.RoleManager {
			t.Fatalf("unexpected role %v %v", role, ok)
		}
	}
	if n := cmd.count(ports.CmdGetUserRole); n != 2 {
		t.Fatalf("expected 2 round trips, got %d", n)
	}
}

func TestSessionResolver_Identify(t *testing.T) {
	cmd := newStubBoundary()
	cmd.results[ports.CmdGetUserInfo] = `{"id":1,"name":"Ann","username":"ann","role":"tenant","status":"active"}`
	r := NewSessionResolver(cmd, zerolog.Nop())

	u, ok := r.Identify(context.Background())
	if !ok {
		t.Fatalf("expected identity")
	}
	if u.Role != domain.RoleTenant || u.Username != "ann" {
		t.Fatalf("unexpected identity %+v", u)
	}
}

func TestSessionResolver_LogoutSwallowsErrors(t *testing.T) {
	cmd := newStubBoundary()
	cmd.errs[ports.CmdAccountLogout] = errors.New("gone")
	r := NewSessionResolver(cmd, zerolog.Nop())

	r.Logout(context.Background())
	if cmd.count(ports.CmdAccountLogout) != 1 {
		t.Fatalf("expected logout to be issued")
	}
}

func TestSessionResolver_Register(t *testing.T) {
	cmd := newStubBoundary()
	r := NewSessionResolver(cmd, zerolog.Nop())

	err := r.Register(context.Background(), domain.RegisterInfo{Username: " Carol ", Role: domain.RoleTenant})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	args := cmd.calls[0].args.(map[string]any)
	info := args["accountInfo"].(domain.RegisterInfo)
	if info.Username != "carol" {
		t.Fatalf("expected normalised username, got %q", info.Username)
	}
}
