package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// AccountHandler handles profile, password and settings changes of any
// signed-in user.
type AccountHandler struct {
	portal  *service.Portal
	screens *ScreenHandler
	Actions
}

func NewAccountHandler(portal *service.Portal, screens *ScreenHandler, a Actions) *AccountHandler {
	return &AccountHandler{portal: portal, screens: screens, Actions: a}
}

// Update changes the profile of the signed-in user.
//
// @Summary      Update account
// @Tags         account
// @Accept       x-www-form-urlencoded
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/account/edit [post]
func (h *AccountHandler) Update(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var form accountForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathAccountEdit, err)
	}

	info := domain.UpdateUserInfo{
		Name:     form.Name,
		Username: user.Username,
		Email:    form.Email,
		Phone:    form.Phone,
	}
	if err := h.portal.UpdateUserInfo(c.Request().Context(), info); err != nil {
		return h.failed(c, screens.PathAccountEdit, i18n.AccountUpdateFailed, err)
	}
	return h.done(c, screens.PathAccount, i18n.AccountUpdateSuccess)
}

// Password changes the password of the signed-in user.
//
// @Summary      Change password
// @Tags         account
// @Accept       x-www-form-urlencoded
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/account/password [post]
func (h *AccountHandler) Password(c echo.Context) error {
	var form passwordForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathAccountEdit, err)
	}

	info := domain.UpdatePasswordInfo{OldPassword: form.OldPassword, NewPassword: form.NewPassword}
	if err := h.portal.UpdatePassword(c.Request().Context(), info); err != nil {
		return h.failed(c, screens.PathAccountEdit, i18n.AccountPasswordFailed, err)
	}
	return h.done(c, screens.PathAccount, i18n.AccountPasswordSuccess)
}

// Settings switches the backend this session talks to. Only configured
// backends are accepted.
//
// @Summary      Update settings
// @Tags         account
// @Accept       x-www-form-urlencoded
// @Param        server_url  formData  string  true  "Backend base URL"
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/settings [post]
func (h *AccountHandler) Settings(c echo.Context) error {
	var form settingsForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathSettings, err)
	}

	if err := h.portal.UpdateSettings(c.Request().Context(), domain.Settings{ServerURL: form.ServerURL}); err != nil {
		return h.failed(c, screens.PathSettings, i18n.SettingsFailed, err)
	}
	return h.done(c, screens.PathSettings, i18n.SettingsSaved)
}
