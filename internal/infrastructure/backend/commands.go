package backend

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

type resultKind uint8

const (
	// resultJSON decodes the response body into the caller's value.
	resultJSON resultKind = iota
	// resultStatus reports whether the backend answered with a 2xx status.
	resultStatus
)

// endpoint maps a command to a backend HTTP call. Path placeholders like
// {feeId} and query values are read from the JSON form of the command args;
// body is the gjson path of the request body within the args.
type endpoint struct {
	method string
	path   string
	body   string
	query  map[string]string
	public bool
	result resultKind
}

var endpoints = map[string]endpoint{
	ports.CmdAccountLogin:    {method: http.MethodPost, path: "/auth/login", body: "@this", public: true},
	ports.CmdAccountLogout:   {method: http.MethodPost, path: "/auth/logout"},
	ports.CmdAccountRegister: {method: http.MethodPost, path: "/auth/register", body: "accountInfo", public: true},
	ports.CmdAccountRecovery: {method: http.MethodPost, path: "/auth/recovery", body: "recoveryInfo", public: true},

	ports.CmdCheckToken:       {method: http.MethodGet, path: "/user/check"},
	ports.CmdCheckAdmin:       {method: http.MethodGet, path: "/admin/check"},
	ports.CmdCheckManager:     {method: http.MethodGet, path: "/manager/check"},
	ports.CmdGetUserInfo:      {method: http.MethodGet, path: "/user/info"},
	ports.CmdUpdateUserInfo:   {method: http.MethodPut, path: "/user/info", body: "info"},
	ports.CmdUpdatePassword:   {method: http.MethodPut, path: "/user/password", body: "info"},
	ports.CmdGetUserRole:      {method: http.MethodGet, path: "/user/role"},
	ports.CmdGetBasicUserInfo: {method: http.MethodGet, path: "/user/basic"},
	ports.CmdGetAllUsers:      {method: http.MethodGet, path: "/admin/users"},
	ports.CmdUpdateUserStatus: {method: http.MethodPut, path: "/admin/users/{userId}/status", body: "@this"},

	ports.CmdGetFees:    {method: http.MethodGet, path: "/manager/fees"},
	ports.CmdAddFee:     {method: http.MethodPost, path: "/manager/fees", body: "info"},
	ports.CmdGetFeeInfo: {method: http.MethodGet, path: "/manager/fees/{feeId}"},
	ports.CmdEditFee:    {method: http.MethodPut, path: "/manager/fees/{id}", body: "info"},
	ports.CmdRemoveFee:  {method: http.MethodDelete, path: "/manager/fees/{id}"},
	ports.CmdAssignFee:  {method: http.MethodPost, path: "/manager/fees/{feeId}/assign", body: "roomNumbers"},
	ports.CmdPayFee:     {method: http.MethodPost, path: "/household/pay", query: map[string]string{"fee_id": "feeId"}},
	ports.CmdCheckPay:   {method: http.MethodGet, path: "/webhook/payment/{id}", result: resultStatus},

	ports.CmdGetRooms:         {method: http.MethodGet, path: "/manager/rooms"},
	ports.CmdGetRoomsDetailed: {method: http.MethodGet, path: "/manager/rooms/detailed"},
	ports.CmdGetHousehold:     {method: http.MethodGet, path: "/user/household"},
	ports.CmdGetFamily:        {method: http.MethodGet, path: "/user/family"},
	ports.CmdAddFamilyMember:  {method: http.MethodPost, path: "/user/family", body: "member"},

	ports.CmdGetNotifications: {method: http.MethodGet, path: "/user/notifications"},
	ports.CmdSendNotification: {method: http.MethodPost, path: "/manager/notifications", body: "info"},
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// resolve fills the path placeholders and query values of ep from args.
func (ep endpoint) resolve(args []byte) (string, error) {
	var missing string
	p := placeholder.ReplaceAllStringFunc(ep.path, func(m string) string {
		name := m[1 : len(m)-1]
		v := gjson.GetBytes(args, name)
		if !v.Exists() || v.String() == "" {
			missing = name
			return m
		}
		return url.PathEscape(v.String())
	})
	if missing != "" {
		return "", fmt.Errorf("%w: missing %s", domain.ErrInvalidPayload, missing)
	}

	if len(ep.query) == 0 {
		return p, nil
	}
	q := url.Values{}
	for key, argPath := range ep.query {
		v := gjson.GetBytes(args, argPath)
		if !v.Exists() {
			return "", fmt.Errorf("%w: missing %s", domain.ErrInvalidPayload, argPath)
		}
		q.Set(key, v.String())
	}
	return p + "?" + q.Encode(), nil
}

// payload extracts the request body of ep from args.
func (ep endpoint) payload(args []byte) []byte {
	if ep.body == "" {
		return nil
	}
	v := gjson.GetBytes(args, ep.body)
	if !v.Exists() {
		return nil
	}
	return []byte(v.Raw)
}
