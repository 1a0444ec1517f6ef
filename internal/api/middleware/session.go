package middleware

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/hkdf"

	"github.com/bluemoon/resident-portal/internal/pkg/session"
)

const (
	// SessionCookie carries the signed portal session id.
	SessionCookie = "bluemoon_session"
	sessionIssuer = "bluemoon-portal"

	ctxSessionID = "session_id"

	// HeaderTab names the browser tab a scripted navigation comes from. Only
	// navigations carrying it are sequenced.
	HeaderTab = "X-Portal-Tab"
)

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	// Key signs the session cookie; derive it with SessionKey.
	Key    []byte
	TTL    time.Duration
	Secure bool
}

// SessionKey derives the cookie signing key from the configured secret.
func SessionKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte("bluemoon-portal session cookie"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return key, nil
}

// Session binds every request to a portal session. The session id lives in
// a signed JWT cookie; a missing, expired or forged cookie starts a new
// session. The id is stored in the request context for the stores keyed by it.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := parseSession(c, cfg.Key)
			if !ok {
				var err error
				sid, err = issueSession(c, cfg)
				if err != nil {
					return err
				}
			}

			bindSession(c, sid)
			return next(c)
		}
	}
}

// RotateSession replaces the session of the current request with a new one:
// a fresh id, a fresh cookie, and a request context bound to the new id.
// Call it whenever the privilege of the browser changes (login, logout) so
// that an id planted before authentication is never the authenticated one.
func RotateSession(c echo.Context, cfg SessionConfig) error {
	sid, err := issueSession(c, cfg)
	if err != nil {
		return err
	}
	bindSession(c, sid)
	return nil
}

func bindSession(c echo.Context, sid string) {
	c.Set(ctxSessionID, sid)
	req := c.Request()
	ctx := session.WithID(req.Context(), sid)
	if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
		ctx = session.WithRequestID(ctx, rid)
	}
	if tab := req.Header.Get(HeaderTab); tab != "" {
		if _, err := uuid.Parse(tab); err == nil {
			ctx = session.WithTab(ctx, tab)
		}
	}
	c.SetRequest(req.WithContext(ctx))
}

// SessionID returns the session id bound by Session.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}

func parseSession(c echo.Context, key []byte) (string, bool) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer))
	if err != nil || !tkn.Valid {
		return "", false
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", false
	}
	return claims.ID, true
}

func issueSession(c echo.Context, cfg SessionConfig) (string, error) {
	sid := uuid.NewString()
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sid,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
	})
	signed, err := token.SignedString(cfg.Key)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(cfg.TTL),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return sid, nil
}
