package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/api/middleware"
	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// Actions finishes a mutation the same way everywhere: flash a notice and
// redirect back so the screen's loader runs again.
type Actions struct {
	flash   ports.FlashStore
	notices *i18n.Catalog
	log     zerolog.Logger
}

func NewActions(flash ports.FlashStore, notices *i18n.Catalog, log zerolog.Logger) Actions {
	return Actions{flash: flash, notices: notices, log: log}
}

func (a *Actions) done(c echo.Context, to, key string) error {
	middleware.PushNotice(c, a.flash, a.log, a.notices.Notice(key))
	return c.Redirect(http.StatusSeeOther, to)
}

// failed reports a rejected mutation. The backend's message, when present,
// becomes the notice description. A lost session goes to the login screen.
func (a *Actions) failed(c echo.Context, to, key string, err error) error {
	if errors.Is(err, domain.ErrNotAuthenticated) {
		middleware.PushNotice(c, a.flash, a.log, a.notices.Notice(i18n.LoginRequired))
		return c.Redirect(http.StatusSeeOther, screens.PathLogin)
	}
	return a.notify(c, to, key, err)
}

// notify flashes the failure notice of key without the session check.
func (a *Actions) notify(c echo.Context, to, key string, err error) error {
	a.log.Warn().Err(err).
		Str("path", c.Request().URL.Path).
		Str("session_id", middleware.SessionID(c)).
		Msg("action failed")

	n := a.notices.Notice(key)
	if d := domain.Detail(err, ""); d != "" {
		n = n.WithDescription(d)
	}
	middleware.PushNotice(c, a.flash, a.log, n)
	return c.Redirect(http.StatusSeeOther, to)
}
