package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/api/metrics"
	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

const ctxIdentity = "identity"

// Authorizer evaluates the guard chain of a screen.
type Authorizer interface {
	Authorize(ctx context.Context, path string) (*domain.BasicUserInfo, *navigation.Redirect, error)
}

// Guard protects a mutating entry point with the guards of the screen it
// belongs to. screen maps the request to that screen's path. A failed guard
// flashes its notice and redirects exactly like a navigation would.
func Guard(a Authorizer, flash ports.FlashStore, log zerolog.Logger, screen func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := screen(c)
			identity, redirect, err := a.Authorize(c.Request().Context(), path)
			if err != nil {
				if errors.Is(err, navigation.ErrNoRoute) {
					return echo.ErrNotFound
				}
				return err
			}
			if redirect != nil {
				if redirect.Notice != nil {
					PushNotice(c, flash, log, *redirect.Notice)
				}
				return c.Redirect(http.StatusSeeOther, redirect.To)
			}

			c.Set(ctxIdentity, identity)
			return next(c)
		}
	}
}

// Identity returns the identity resolved by Guard, if any.
func Identity(c echo.Context) *domain.BasicUserInfo {
	u, _ := c.Get(ctxIdentity).(*domain.BasicUserInfo)
	return u
}

// ScreenPath resolves a route pattern such as "/dashboard/fees/info/:feeId"
// against the path parameters of the current request.
func ScreenPath(pattern string) func(echo.Context) string {
	segs := strings.Split(pattern, "/")
	return func(c echo.Context) string {
		out := make([]string, len(segs))
		for i, s := range segs {
			if strings.HasPrefix(s, ":") {
				out[i] = c.Param(s[1:])
				continue
			}
			out[i] = s
		}
		return strings.Join(out, "/")
	}
}

// PushNotice queues n for the next rendered screen of the session.
func PushNotice(c echo.Context, flash ports.FlashStore, log zerolog.Logger, n domain.Notice) {
	sid := SessionID(c)
	if sid == "" {
		return
	}
	if err := flash.Push(c.Request().Context(), sid, n); err != nil {
		log.Warn().Err(err).Str("session_id", sid).Msg("flash push failed")
		return
	}
	metrics.NoticesTotal.WithLabelValues(string(n.Variant)).Inc()
}
