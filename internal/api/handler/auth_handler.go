package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/bluemoon/resident-portal/internal/api/metrics"
	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// Sessions starts and ends backend sessions.
type Sessions interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Logout(ctx context.Context)
	Register(ctx context.Context, info domain.RegisterInfo) error
	RecoverAccount(ctx context.Context, info domain.RecoveryInfo) error
}

// Rotator replaces the portal session of a request with a new one.
type Rotator func(c echo.Context) error

type AuthHandler struct {
	sessions Sessions
	screens  *ScreenHandler
	rotate   Rotator
	Actions
}

func NewAuthHandler(sessions Sessions, screens *ScreenHandler, a Actions, rotate Rotator) *AuthHandler {
	return &AuthHandler{sessions: sessions, screens: screens, rotate: rotate, Actions: a}
}

// Login authenticates against the backend and opens the dashboard.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username, case-insensitive"
// @Param        password  formData  string  true  "Password"
// @Success      303  "to /dashboard, or back to /login with a notice"
// @Failure      422  "form re-rendered with field errors"
// @Failure      429  "too many attempts"
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := bindForm(c, &form); err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid").Inc()
			return h.screens.Invalid(c, screens.PathLogin, fe)
		}
		return err
	}

	// The backend tokens are stored under the session id, so the new id
	// must exist before the login command runs.
	if err := h.rotate(c); err != nil {
		return err
	}
	_, err := h.sessions.Login(c.Request().Context(), domain.Credentials{
		Username: form.Username,
		Password: form.Password,
	})
	switch {
	case errors.Is(err, domain.ErrAccountInactive):
		metrics.LoginAttemptsTotal.WithLabelValues("inactive").Inc()
		return h.done(c, screens.PathLogin, i18n.AccountInactive)
	case err != nil:
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return h.notify(c, screens.PathLogin, i18n.LoginFailed, err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return h.done(c, screens.PathDashboard, i18n.LoginSuccess)
}

// Logout ends the backend session. It never fails.
//
// @Summary      Logout
// @Tags         auth
// @Success      303  "to /login"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Logout(c.Request().Context())
	if err := h.rotate(c); err != nil {
		return err
	}
	return h.done(c, screens.PathLogin, i18n.LoggedOut)
}

// Register requests a new account; it stays inactive until an admin enables it.
//
// @Summary      Register
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Success      303  "to /login on success, back to /register otherwise"
// @Failure      422  "form re-rendered with field errors"
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.screens.Invalid(c, screens.PathRegister, FieldErrors{"_form": "Dữ liệu không hợp lệ"})
	}
	form.Username = service.NormalizeUsername(form.Username)
	if err := c.Validate(&form); err != nil {
		return h.screens.reject(c, screens.PathRegister, err)
	}

	if err := h.sessions.Register(c.Request().Context(), form.info()); err != nil {
		return h.failed(c, screens.PathRegister, i18n.RegisterFailed, err)
	}
	return h.done(c, screens.PathLogin, i18n.RegisterSuccess)
}

// PasswordReset requests account recovery by email or phone.
//
// @Summary      Recover account
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /password-reset [post]
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var form recoveryForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathPasswordReset, err)
	}

	if err := h.sessions.RecoverAccount(c.Request().Context(), form.info()); err != nil {
		return h.failed(c, screens.PathPasswordReset, i18n.RecoveryFailed, err)
	}
	return h.done(c, screens.PathLogin, i18n.RecoverySent)
}
