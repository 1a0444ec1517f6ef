// Package backend implements the command boundary as an HTTP/JSON client of
// the BlueMoon backend web server.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/pkg/session"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
	maxErrorBytes  = 64 << 10
)

// Config configures the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// AllowedURLs lists the backends a session may switch to. BaseURL is
	// always allowed.
	AllowedURLs []string
}

// Hook is called after every command with its duration and outcome.
type Hook func(command string, elapsed time.Duration, err error)

// Client is a ports.CommandBoundary over HTTP. Session tokens are kept in a
// TokenStore keyed by the portal session id found in the context.
type Client struct {
	http    *http.Client
	baseURL string
	allowed []string
	tokens  ports.TokenStore
	hook    Hook
	log     zerolog.Logger
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// NewClient creates a backend client.
func NewClient(cfg Config, tokens ports.TokenStore, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	allowed := []string{base}
	for _, u := range cfg.AllowedURLs {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u != "" && !slices.Contains(allowed, u) {
			allowed = append(allowed, u)
		}
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: base,
		allowed: allowed,
		tokens:  tokens,
		log:     log,
	}
}

// SetHook installs a hook observing every command.
func (c *Client) SetHook(h Hook) { c.hook = h }

// Invoke issues a named command.
func (c *Client) Invoke(ctx context.Context, name string, args any, out any) (err error) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		if c.hook != nil {
			c.hook(name, elapsed, err)
		}
		ev := c.log.Debug()
		if err != nil {
			ev = c.log.Warn().Err(err)
		}
		ev.Str("command", name).Dur("elapsed", elapsed).Msg("command")
	}()

	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidPayload, name, err)
	}

	switch name {
	case ports.CmdAccountLogin:
		return c.login(ctx, raw, out)
	case ports.CmdAccountLogout:
		return c.logout(ctx)
	case ports.CmdUpdateSettings:
		return c.updateSettings(ctx, raw)
	}

	ep, ok := endpoints[name]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCommand, name)
	}
	return c.call(ctx, name, ep, raw, out)
}

// BackendURL returns the backend the session in ctx talks to.
func (c *Client) BackendURL(ctx context.Context) string {
	sid := session.ID(ctx)
	if sid == "" || c.tokens == nil {
		return c.baseURL
	}
	u, err := c.tokens.BackendURL(ctx, sid)
	if err != nil || u == "" {
		return c.baseURL
	}
	return u
}

// AllowedBackends lists the backends a session may switch to.
func (c *Client) AllowedBackends() []string {
	return slices.Clone(c.allowed)
}

// Ping checks that the default backend answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBytes))
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("backend ping: status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) call(ctx context.Context, name string, ep endpoint, args []byte, out any) error {
	target, err := ep.resolve(args)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	body := ep.payload(args)

	var tokens ports.SessionTokens
	if !ep.public {
		if tokens, err = c.sessionTokens(ctx, name); err != nil {
			return err
		}
	}

	resp, err := c.do(ctx, ep.method, target, body, tokens.Access)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	if !ep.public && needsRefresh(resp) {
		drain(resp)
		if err := c.refresh(ctx, name, tokens.Refresh); err != nil {
			return err
		}
		if tokens, err = c.sessionTokens(ctx, name); err != nil {
			return err
		}
		if resp, err = c.do(ctx, ep.method, target, body, tokens.Access); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	defer resp.Body.Close()

	if ep.result == resultStatus {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		if resp.StatusCode == http.StatusUnauthorized {
			return commandError(name, resp.StatusCode, nil)
		}
		return assign(out, resp.StatusCode < 300)
	}
	return decode(name, resp, out)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte, access string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BackendURL(ctx)+target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func (c *Client) sessionTokens(ctx context.Context, name string) (ports.SessionTokens, error) {
	sid := session.ID(ctx)
	if sid == "" || c.tokens == nil {
		return ports.SessionTokens{}, notLoggedIn(name)
	}
	t, err := c.tokens.Tokens(ctx, sid)
	if errors.Is(err, domain.ErrNotAuthenticated) || (err == nil && t.Access == "") {
		return ports.SessionTokens{}, notLoggedIn(name)
	}
	if err != nil {
		return ports.SessionTokens{}, fmt.Errorf("%s: load tokens: %w", name, err)
	}
	return t, nil
}

// refresh exchanges the refresh token for a new pair. A rejected refresh
// ends the session.
func (c *Client) refresh(ctx context.Context, name, refreshToken string) error {
	sid := session.ID(ctx)
	if refreshToken == "" {
		return notLoggedIn(name)
	}
	body, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	resp, err := c.do(ctx, http.MethodPost, "/auth/refresh", body, "")
	if err != nil {
		return fmt.Errorf("%s: refresh: %w", name, err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := decode(name, resp, &tr); err != nil || tr.AccessToken == "" {
		if delErr := c.tokens.DeleteTokens(ctx, sid); delErr != nil {
			c.log.Warn().Err(delErr).Str("session_id", sid).Msg("drop tokens after failed refresh")
		}
		return notLoggedIn(name)
	}
	return c.tokens.SaveTokens(ctx, sid, ports.SessionTokens{Access: tr.AccessToken, Refresh: tr.RefreshToken})
}

func (c *Client) login(ctx context.Context, args []byte, out any) error {
	sid := session.ID(ctx)
	if sid == "" || c.tokens == nil {
		return fmt.Errorf("%s: no portal session", ports.CmdAccountLogin)
	}
	ep := endpoints[ports.CmdAccountLogin]

	resp, err := c.do(ctx, ep.method, ep.path, ep.payload(args), "")
	if err != nil {
		return fmt.Errorf("%s: %w", ports.CmdAccountLogin, err)
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := decode(ports.CmdAccountLogin, resp, &tr); err != nil {
		return err
	}
	if tr.AccessToken == "" {
		return commandError(ports.CmdAccountLogin, http.StatusBadGateway, []byte("missing access token"))
	}
	if err := c.tokens.SaveTokens(ctx, sid, ports.SessionTokens{Access: tr.AccessToken, Refresh: tr.RefreshToken}); err != nil {
		return fmt.Errorf("%s: store tokens: %w", ports.CmdAccountLogin, err)
	}

	tokenType := tr.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	return assign(out, tokenType)
}

// logout tells the backend to revoke the session and forgets the tokens
// whatever the backend answered.
func (c *Client) logout(ctx context.Context) error {
	sid := session.ID(ctx)
	tokens, err := c.sessionTokens(ctx, ports.CmdAccountLogout)
	if err != nil {
		return err
	}

	var callErr error
	ep := endpoints[ports.CmdAccountLogout]
	resp, err := c.do(ctx, ep.method, ep.path, nil, tokens.Access)
	if err != nil {
		callErr = fmt.Errorf("%s: %w", ports.CmdAccountLogout, err)
	} else {
		callErr = decode(ports.CmdAccountLogout, resp, nil)
		resp.Body.Close()
	}

	if err := c.tokens.DeleteTokens(ctx, sid); err != nil {
		return fmt.Errorf("%s: drop tokens: %w", ports.CmdAccountLogout, err)
	}
	return callErr
}

func (c *Client) updateSettings(ctx context.Context, args []byte) error {
	sid := session.ID(ctx)
	if sid == "" || c.tokens == nil {
		return fmt.Errorf("%s: no portal session", ports.CmdUpdateSettings)
	}
	u := strings.TrimRight(strings.TrimSpace(gjson.GetBytes(args, "data.server_url").String()), "/")
	if !slices.Contains(c.allowed, u) {
		return fmt.Errorf("%w: %s: backend %q not allowed", domain.ErrInvalidPayload, ports.CmdUpdateSettings, u)
	}
	if u == c.baseURL {
		u = ""
	}
	return c.tokens.SetBackendURL(ctx, sid, u)
}

func needsRefresh(resp *http.Response) bool {
	if resp.StatusCode == http.StatusUnauthorized {
		return true
	}
	if resp.StatusCode < 400 {
		return false
	}
	code := gjson.Get(resp.Header.Get("WWW-Authenticate"), "error").String()
	return code == domain.CodeInvalidToken || code == domain.CodeExpiredToken
}

func decode(name string, resp *http.Response, out any) error {
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return commandError(name, resp.StatusCode, body)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: read response: %w", name, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", name, err)
	}
	return nil
}

// commandError builds the error signal from a failed response. JSON bodies
// carry a machine code in "error" and a message in "error_description" or
// "message"; any other body is passed through as the message.
func commandError(name string, status int, body []byte) *domain.CommandError {
	ce := &domain.CommandError{Command: name, Status: status}
	trimmed := bytes.TrimSpace(body)
	if gjson.ValidBytes(trimmed) && gjson.ParseBytes(trimmed).IsObject() {
		res := gjson.GetManyBytes(trimmed, "error", "error_description", "message")
		ce.Code = res[0].String()
		ce.Message = res[1].String()
		if ce.Message == "" {
			ce.Message = res[2].String()
		}
		return ce
	}
	if s := string(trimmed); s != "" {
		if unq := gjson.ParseBytes(trimmed); unq.Type == gjson.String {
			s = unq.String()
		}
		ce.Message = s
	}
	return ce
}

func notLoggedIn(name string) *domain.CommandError {
	return &domain.CommandError{Command: name, Status: http.StatusUnauthorized, Message: "Not logged in"}
}

func assign(out any, v any) error {
	if out == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBytes))
	resp.Body.Close()
}
