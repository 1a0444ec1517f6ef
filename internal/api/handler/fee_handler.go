package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bluemoon/resident-portal/internal/api/middleware"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// FeeHandler handles the fee management actions of managers and admins.
type FeeHandler struct {
	portal  *service.Portal
	screens *ScreenHandler
	Actions
}

func NewFeeHandler(portal *service.Portal, screens *ScreenHandler, a Actions) *FeeHandler {
	return &FeeHandler{portal: portal, screens: screens, Actions: a}
}

// Add creates a fee.
//
// @Summary      Add fee
// @Tags         fees
// @Accept       x-www-form-urlencoded
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/fees [post]
func (h *FeeHandler) Add(c echo.Context) error {
	var form feeForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathFees, err)
	}
	in, err := form.input()
	if err != nil {
		return h.screens.Invalid(c, screens.PathFees, FieldErrors{"due_date": "Ngày không hợp lệ"})
	}

	if err := h.portal.AddFee(c.Request().Context(), in); err != nil {
		return h.failed(c, screens.PathFees, i18n.FeeAddFailed, err)
	}
	return h.done(c, screens.PathFees, i18n.FeeAddSuccess)
}

// Edit updates a fee.
//
// @Summary      Edit fee
// @Tags         fees
// @Accept       x-www-form-urlencoded
// @Param        feeId  path  int  true  "Fee ID"
// @Success      303
// @Failure      404  {object}  map[string]string
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/fees/info/{feeId} [post]
func (h *FeeHandler) Edit(c echo.Context) error {
	id, err := pathID(c, "feeId")
	if err != nil {
		return err
	}
	screen := feeInfoPath(c)

	var form feeForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screen, err)
	}
	in, err := form.input()
	if err != nil {
		return h.screens.Invalid(c, screen, FieldErrors{"due_date": "Ngày không hợp lệ"})
	}

	if err := h.portal.EditFee(c.Request().Context(), id, in); err != nil {
		return h.failed(c, screen, i18n.FeeEditFailed, err)
	}
	return h.done(c, screen, i18n.FeeEditSuccess)
}

// Delete removes a fee and returns to the fee list.
//
// @Summary      Delete fee
// @Tags         fees
// @Param        feeId  path  int  true  "Fee ID"
// @Success      303
// @Router       /dashboard/fees/info/{feeId}/delete [post]
func (h *FeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "feeId")
	if err != nil {
		return err
	}

	if err := h.portal.RemoveFee(c.Request().Context(), id); err != nil {
		return h.failed(c, feeInfoPath(c), i18n.FeeDeleteFailed, err)
	}
	return h.done(c, screens.PathFees, i18n.FeeDeleteSuccess)
}

// Assign applies a fee to the selected rooms and to every room of the
// selected floors.
//
// @Summary      Assign fee to rooms
// @Tags         fees
// @Param        feeId   path      int    true   "Fee ID"
// @Param        rooms   formData  []int  false  "Room numbers"
// @Param        floors  formData  []int  false  "Floors"
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/fees/info/{feeId}/assign [post]
func (h *FeeHandler) Assign(c echo.Context) error {
	id, err := pathID(c, "feeId")
	if err != nil {
		return err
	}
	screen := feeInfoPath(c)

	var form assignForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screen, err)
	}

	ctx := c.Request().Context()
	known, err := h.portal.Rooms(ctx)
	if err != nil {
		return h.failed(c, screen, i18n.FeeAssignFailed, err)
	}
	rooms := service.ExpandFloors(form.Floors, form.Rooms, known)
	if len(rooms) == 0 {
		return h.screens.Invalid(c, screen, FieldErrors{"rooms": "Không có căn hộ nào được chọn"})
	}

	if err := h.portal.AssignFee(ctx, id, rooms); err != nil {
		return h.failed(c, screen, i18n.FeeAssignFailed, err)
	}
	return h.done(c, screen, i18n.FeeAssignSuccess)
}

var feeInfoPath = middleware.ScreenPath(screens.PathFeeInfo)
