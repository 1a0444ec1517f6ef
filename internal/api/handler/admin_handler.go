package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// AdminHandler handles manager notifications and admin account actions.
type AdminHandler struct {
	portal  *service.Portal
	screens *ScreenHandler
	Actions
}

func NewAdminHandler(portal *service.Portal, screens *ScreenHandler, a Actions) *AdminHandler {
	return &AdminHandler{portal: portal, screens: screens, Actions: a}
}

// SendNotification delivers a notification to one user or to everyone.
//
// @Summary      Send notification
// @Tags         notifications
// @Accept       x-www-form-urlencoded
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/notifications/manager [post]
func (h *AdminHandler) SendNotification(c echo.Context) error {
	var form notificationForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathNotificationManager, err)
	}

	if err := h.portal.SendNotification(c.Request().Context(), form.input()); err != nil {
		return h.failed(c, screens.PathNotificationManager, i18n.NotificationSendFailed, err)
	}
	return h.done(c, screens.PathNotificationManager, i18n.NotificationSendSuccess)
}

// SetStatus activates or deactivates an account.
//
// @Summary      Set account status
// @Tags         admin
// @Param        userId  path      int     true  "User ID"
// @Param        status  formData  string  true  "active or inactive"
// @Success      303
// @Failure      404  {object}  map[string]string
// @Router       /dashboard/admin/accounts/{userId}/status [post]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	var form statusForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathAdminAccounts, err)
	}

	if err := h.portal.UpdateUserStatus(c.Request().Context(), id, domain.AccountStatus(form.Status)); err != nil {
		return h.failed(c, screens.PathAdminAccounts, i18n.StatusUpdateFailed, err)
	}
	return h.done(c, screens.PathAdminAccounts, i18n.StatusUpdateSuccess)
}
