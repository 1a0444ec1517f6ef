package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bluemoon/resident-portal/internal/api/middleware"
	"github.com/bluemoon/resident-portal/internal/core/domain"
)

// secretFields are never echoed back into a re-rendered form.
var secretFields = map[string]struct{}{
	"password":         {},
	"confirm_password": {},
	"old_password":     {},
	"new_password":     {},
	"_csrf":            {},
}

// formValues snapshots the submitted form for a re-render.
func formValues(c echo.Context) map[string]string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		if _, secret := secretFields[k]; secret || len(v) == 0 {
			continue
		}
		out[k] = v[0]
	}
	return out
}

// bindForm binds and validates a form. A FieldErrors result means the
// caller should re-render the screen.
func bindForm(c echo.Context, form any) error {
	if err := c.Bind(form); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusBadRequest {
			return FieldErrors{"_form": "Dữ liệu không hợp lệ"}
		}
		return err
	}
	return c.Validate(form)
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param(name)))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "không tìm thấy")
	}
	return id, nil
}

// ctxIdentity returns the identity resolved by the guard of the screen, and
// fails fast when the guard did not run.
func ctxIdentity(c echo.Context) (*domain.BasicUserInfo, error) {
	u := middleware.Identity(c)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return u, nil
}
