package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bluemoon/resident-portal/internal/api/view"
	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
)

// errorResponse is the canonical error envelope for JSON clients.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error page for browsers and {"error": "<message>"} otherwise.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		if wantsHTML(c) {
			if rerr := c.Render(code, view.ViewError, view.Page{Status: code, Message: msg}); rerr == nil {
				return
			}
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, rate limiting, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, navigation.ErrNoRoute), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "không tìm thấy trang"
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "chưa đăng nhập"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "không có quyền truy cập"
	case errors.Is(err, domain.ErrInvalidPayload):
		return http.StatusBadRequest, "dữ liệu không hợp lệ"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "lỗi hệ thống"
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
