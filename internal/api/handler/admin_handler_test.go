package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
)

func TestAdminHandler_SendNotification_ToAll(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewNotificationManager))
	cmds := &stubCommands{}
	h := NewAdminHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, screens.PathNotificationManager, url.Values{
		"title": {"Cắt nước"}, "message": {"Thứ 7 cắt nước từ 8h"}, "to_user": {"tenant1"}, "send_all": {"true"},
	})
	if err := h.SendNotification(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathNotificationManager)
	call, ok := cmds.called(ports.CmdSendNotification)
	if !ok {
		t.Fatalf("expected send_notification to be invoked")
	}
	info, _ := call.args["info"].(map[string]any)
	if info["send_all"] != true || info["to_user"] != nil {
		t.Fatalf("unexpected payload: %+v", info)
	}
}

func TestAdminHandler_SendNotification_RequiresRecipient(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewNotificationManager))
	cmds := &stubCommands{}
	h := NewAdminHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, screens.PathNotificationManager, url.Values{
		"title": {"Cắt nước"}, "message": {"..."},
	})
	if err := h.SendNotification(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity || f.renderer.page.Error("to_user") == "" {
		t.Fatalf("expected 422 with to_user error, got %d %+v", rec.Code, f.renderer.page.Errors)
	}
}

func TestAdminHandler_SetStatus(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewAdminAccounts))
	cmds := &stubCommands{}
	h := NewAdminHandler(service.NewPortal(cmds.boundary()), f.screens, f.actions)

	c, rec := f.request(http.MethodPost, "/dashboard/admin/accounts/12/status", url.Values{"status": {"active"}})
	c.SetParamNames("userId")
	c.SetParamValues("12")
	if err := h.SetStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	expectRedirect(t, rec, screens.PathAdminAccounts)
	call, ok := cmds.called(ports.CmdUpdateUserStatus)
	if !ok || call.args["userId"] != float64(12) || call.args["status"] != "active" {
		t.Fatalf("unexpected invocation: %+v", cmds.calls)
	}
}

func TestAdminHandler_SetStatus_BadID(t *testing.T) {
	f := newFixture(t, rendering(screens.ViewAdminAccounts))
	h := NewAdminHandler(service.NewPortal((&stubCommands{}).boundary()), f.screens, f.actions)

	c, _ := f.request(http.MethodPost, "/dashboard/admin/accounts/x/status", url.Values{"status": {"active"}})
	c.SetParamNames("userId")
	c.SetParamValues("x")
	if err := h.SetStatus(c); err == nil {
		t.Fatalf("expected not found")
	}
}
