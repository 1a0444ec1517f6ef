package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

// SessionResolver answers session and role questions through the command
// boundary. Apart from Login, Register and RecoverAccount it never returns
// errors: every failure degrades to a negative answer.
type SessionResolver struct {
	cmd ports.CommandBoundary
	log zerolog.Logger
}

func NewSessionResolver(cmd ports.CommandBoundary, log zerolog.Logger) *SessionResolver {
	return &SessionResolver{cmd: cmd, log: log}
}

// IsAuthenticated reports whether the session holds a valid token.
func (r *SessionResolver) IsAuthenticated(ctx context.Context) bool {
	return r.check(ctx, ports.CmdCheckToken)
}

// IsAdmin reports whether the session belongs to an administrator.
func (r *SessionResolver) IsAdmin(ctx context.Context) bool {
	return r.check(ctx, ports.CmdCheckAdmin)
}

// IsManager reports whether the session belongs to a manager.
func (r *SessionResolver) IsManager(ctx context.Context) bool {
	return r.check(ctx, ports.CmdCheckManager)
}

func (r *SessionResolver) check(ctx context.Context, cmd string) bool {
	if err := r.cmd.Invoke(ctx, cmd, nil, nil); err != nil {
		r.log.Debug().Err(err).Str("command", cmd).Msg("session check failed")
		return false
	}
	return true
}

// GetRole looks up the role of the session. It is a fresh round trip on
// every call.
func (r *SessionResolver) GetRole(ctx context.Context) (domain.Role, bool) {
	var role domain.Role
	if err := r.cmd.Invoke(ctx, ports.CmdGetUserRole, nil, &role); err != nil {
		r.log.Debug().Err(err).Msg("role lookup failed")
		return domain.RoleUnknown, false
	}
	return role, role != domain.RoleUnknown
}

// Identify fetches the full identity of the session. Navigation calls it
// once and derives both its guard decisions and its screen data from the
// result.
func (r *SessionResolver) Identify(ctx context.Context) (*domain.BasicUserInfo, bool) {
	var u domain.BasicUserInfo
	if err := r.cmd.Invoke(ctx, ports.CmdGetUserInfo, nil, &u); err != nil {
		r.log.Debug().Err(err).Msg("identity lookup failed")
		return nil, false
	}
	if u.Role == domain.RoleUnknown {
		return nil, false
	}
	return &u, true
}

// Login starts a session. The username is case-folded before it is sent;
// backend errors are returned as is so callers can tell an inactive account
// from bad credentials.
func (r *SessionResolver) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	creds.Username = NormalizeUsername(creds.Username)

	var token string
	if err := r.cmd.Invoke(ctx, ports.CmdAccountLogin, creds, &token); err != nil {
		return "", err
	}
	return token, nil
}

// Logout ends the session. Failures are logged and otherwise ignored.
func (r *SessionResolver) Logout(ctx context.Context) {
	if err := r.cmd.Invoke(ctx, ports.CmdAccountLogout, nil, nil); err != nil {
		r.log.Warn().Err(err).Msg("logout failed")
	}
}

// Register creates an account awaiting activation.
func (r *SessionResolver) Register(ctx context.Context, info domain.RegisterInfo) error {
	info.Username = NormalizeUsername(info.Username)
	return r.cmd.Invoke(ctx, ports.CmdAccountRegister, map[string]any{"accountInfo": info}, nil)
}

// RecoverAccount requests a password reset.
func (r *SessionResolver) RecoverAccount(ctx context.Context, info domain.RecoveryInfo) error {
	info.Username = NormalizeUsername(info.Username)
	return r.cmd.Invoke(ctx, ports.CmdAccountRecovery, map[string]any{"recoveryInfo": info}, nil)
}

// NormalizeUsername trims and lower-cases a username.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
