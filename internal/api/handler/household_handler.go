package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// HouseholdHandler handles the tenant's payment and family actions.
type HouseholdHandler struct {
	portal  *service.Portal
	screens *ScreenHandler
	Actions
}

func NewHouseholdHandler(portal *service.Portal, screens *ScreenHandler, a Actions) *HouseholdHandler {
	return &HouseholdHandler{portal: portal, screens: screens, Actions: a}
}

// Pay confirms or starts the payment of a fee. A QR payload or assignment id
// checks whether the transfer arrived; a fee id pays it directly.
//
// @Summary      Pay fee
// @Tags         household
// @Accept       x-www-form-urlencoded
// @Param        payload        formData  string  false  "Scanned payment QR payload"
// @Param        assignment_id  formData  int     false  "Fee assignment ID"
// @Param        fee_id         formData  int     false  "Fee ID"
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/household/pay [post]
func (h *HouseholdHandler) Pay(c echo.Context) error {
	var form payForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathHousehold, err)
	}
	ctx := c.Request().Context()

	if form.FeeID > 0 && form.Payload == "" && form.AssignmentID == 0 {
		if err := h.portal.PayFee(ctx, form.FeeID); err != nil {
			return h.failed(c, screens.PathHousehold, i18n.PaymentError, err)
		}
		return h.done(c, screens.PathHousehold, i18n.PaymentSuccess)
	}

	assignment := form.AssignmentID
	if form.Payload != "" {
		fee, err := service.DecodePaymentQR(form.Payload)
		if err != nil {
			return h.screens.Invalid(c, screens.PathHousehold, FieldErrors{"payload": "Mã QR không hợp lệ"})
		}
		assignment = fee.AssignmentID
	}

	paid, err := h.portal.CheckPayment(ctx, assignment)
	if err != nil {
		return h.failed(c, screens.PathHousehold, i18n.PaymentError, err)
	}
	if !paid {
		return h.done(c, screens.PathHousehold, i18n.PaymentPending)
	}
	return h.done(c, screens.PathHousehold, i18n.PaymentSuccess)
}

// AddFamilyMember registers a person in the tenant's household.
//
// @Summary      Add family member
// @Tags         household
// @Accept       x-www-form-urlencoded
// @Success      303
// @Failure      422  "form re-rendered with field errors"
// @Router       /dashboard/household/family [post]
func (h *HouseholdHandler) AddFamilyMember(c echo.Context) error {
	var form familyForm
	if err := bindForm(c, &form); err != nil {
		return h.screens.reject(c, screens.PathFamily, err)
	}
	m, err := form.member()
	if err != nil {
		return h.screens.Invalid(c, screens.PathFamily, FieldErrors{"birthday": "Ngày không hợp lệ"})
	}

	if err := h.portal.AddFamilyMember(c.Request().Context(), m); err != nil {
		return h.failed(c, screens.PathFamily, i18n.FamilyAddFailed, err)
	}
	return h.done(c, screens.PathFamily, i18n.FamilyAddSuccess)
}
