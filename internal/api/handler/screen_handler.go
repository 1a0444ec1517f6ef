package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/api/middleware"
	"github.com/bluemoon/resident-portal/internal/api/view"
	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

// Navigator runs a navigation.
type Navigator interface {
	Navigate(ctx context.Context, req navigation.NavRequest) (navigation.Outcome, error)
}

// ScreenHandler turns navigations into HTTP responses: a rendered screen, a
// 303 to the fallback route, or 204 when a newer navigation of the same tab
// superseded it.
type ScreenHandler struct {
	nav   Navigator
	flash ports.FlashStore
	log   zerolog.Logger
}

func NewScreenHandler(nav Navigator, flash ports.FlashStore, log zerolog.Logger) *ScreenHandler {
	return &ScreenHandler{nav: nav, flash: flash, log: log}
}

// Show navigates to the requested screen.
//
// @Summary      Navigate to a screen
// @Description  Runs the guard chain and the loader of the route, then renders it or redirects.
// @Tags         screens
// @Produce      html
// @Success      200
// @Success      204  "superseded by a newer navigation"
// @Success      303  "guard or loader failure"
// @Failure      404  {object}  map[string]string
// @Router       /dashboard [get]
func (h *ScreenHandler) Show(c echo.Context) error {
	return h.navigate(c, c.Request().URL.Path, http.StatusOK, nil)
}

// Invalid re-renders the screen at path with the submitted form and its
// validation messages.
func (h *ScreenHandler) Invalid(c echo.Context, path string, errs FieldErrors) error {
	return h.navigate(c, path, http.StatusUnprocessableEntity, errs)
}

func (h *ScreenHandler) navigate(c echo.Context, path string, status int, errs FieldErrors) error {
	ctx := c.Request().Context()
	out, err := h.nav.Navigate(ctx, navigation.NavRequest{Path: path, Query: c.QueryParams()})
	if err != nil {
		if errors.Is(err, navigation.ErrNoRoute) {
			return echo.ErrNotFound
		}
		return err
	}

	switch out.State {
	case navigation.Discarded:
		return c.NoContent(http.StatusNoContent)
	case navigation.Redirected:
		if out.Redirect.Notice != nil {
			middleware.PushNotice(c, h.flash, h.log, *out.Redirect.Notice)
		}
		return c.Redirect(http.StatusSeeOther, out.Redirect.To)
	}

	page := view.Page{
		Path:     path,
		Identity: out.Identity,
		Data:     out.Data,
		Notices:  h.popNotices(c),
		CSRF:     csrfToken(c),
	}
	if errs != nil {
		page.Form = formValues(c)
		page.Errors = errs
	}
	return c.Render(status, out.Route.View, page)
}

func (h *ScreenHandler) popNotices(c echo.Context) []domain.Notice {
	sid := middleware.SessionID(c)
	if sid == "" {
		return nil
	}
	notices, err := h.flash.Pop(c.Request().Context(), sid)
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", sid).Msg("flash pop failed")
		return nil
	}
	return notices
}

func csrfToken(c echo.Context) string {
	tok, _ := c.Get("csrf").(string)
	return tok
}

// reject re-renders path when err is a validation failure and passes any
// other error through.
func (h *ScreenHandler) reject(c echo.Context, path string, err error) error {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return h.Invalid(c, path, fe)
	}
	return err
}
