package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

func TestHouseholdHandler_Pay_WithQRPayload(t *testing.T) {
	tests := []struct {
		name string
		paid bool
		want string
	}{
		{"received", true, i18n.PaymentSuccess},
		{"not yet received", false, i18n.PaymentPending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, rendering(screens.ViewHousehold))
			cmds := &stubCommands{results: map[string]any{ports.CmdCheckPay: tc.paid}}
			h := NewHouseholdHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

			payload, err := service.PaymentQRPayload(domain.FeeRoomInfo{AssignmentID: 42, RoomNumber: 101, FeeID: 3})
			if err != nil {
				t.Fatalf("payload: %v", err)
			}
			c, rec := f.request(http.MethodPost, "/dashboard/household/pay", url.Values{"payload": {payload}})
			if err := h.Pay(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			expectRedirect(t, rec, screens.PathHousehold)
			call, ok := cmds.called(ports.CmdCheckPay)
			if !ok || call.args["id"] != float64(42) {
				t.Fatalf("expected check_payment for assignment 42, got %+v", cmds.calls)
			}
			if got := f.flash.last(t); got.Title != f.notices.Notice(tc.want).Title {
				t.Fatalf("unexpected notice: %+v", got)
			}
		})
	}
}

func TestHouseholdHandler_Pay_ByFee(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewHousehold))
	cmds := &stubCommands{}
	h := NewHouseholdHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, "/dashboard/household/pay", url.Values{"fee_id": {"3"}})
	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathHousehold)
	if call, ok := cmds.called(ports.CmdPayFee); !ok || call.args["feeId"] != float64(3) {
		t.Fatalf("expected pay_fee for fee 3, got %+v", cmds.calls)
	}
	if _, ok := cmds.called(ports.CmdCheckPay); ok {
		t.Fatalf("check_payment must not be invoked when paying by fee")
	}
}

func TestHouseholdHandler_Pay_MalformedPayload(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewHousehold))
	cmds := &stubCommands{}
	h := NewHouseholdHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, "/dashboard/household/pay", url.Values{"payload": {"not-json"}})
	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if len(cmds.calls) != 0 {
		t.Fatalf("no command may be invoked, got %+v", cmds.calls)
	}
}

func TestHouseholdHandler_Pay_SessionLost(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewHousehold))
	cmds := &stubCommands{errs: map[string]error{
		ports.CmdCheckPay: &domain.CommandError{Command: ports.CmdCheckPay, Status: http.StatusUnauthorized},
	}}
	h := NewHouseholdHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, "/dashboard/household/pay", url.Values{"assignment_id": {"9"}})
	if err := h.Pay(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathLogin)
	if got := f.flash.last(t); got.Title != f.notices.Notice(i18n.LoginRequired).Title {
		t.Fatalf("expected login required notice, got %+v", got)
	}
}

func TestHouseholdHandler_AddFamilyMember(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewFamily))
	cmds := &stubCommands{}
	h := NewHouseholdHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, screens.PathFamily, url.Values{"name": {"Nguyễn Văn B"}, "birthday": {"2010-05-20"}})
	if err := h.AddFamilyMember(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathFamily)
	call, ok := cmds.called(ports.CmdAddFamilyMember)
	if !ok {
		t.Fatalf("expected add_family_member to be invoked")
	}
	member, _ := call.args["member"].(map[string]any)
	if member["name"] != "Nguyễn Văn B" {
		t.Fatalf("unexpected member payload: %+v", member)
	}
}
