package ports

import "context"

// Command names understood by the backend.
const (
	CmdAccountLogin     = "account_login"
	CmdAccountLogout    = "account_logout"
	CmdAccountRegister  = "account_register"
	CmdAccountRecovery  = "account_recovery"
	CmdCheckToken       = "check_token"
	CmdCheckAdmin       = "check_admin"
	CmdCheckManager     = "check_manager"
	CmdGetUserInfo      = "get_user_info"
	CmdUpdateUserInfo   = "update_user_info"
	CmdUpdatePassword   = "update_password"
	CmdGetUserRole      = "get_user_role"
	CmdGetBasicUserInfo = "get_basic_user_info"
	CmdGetAllUsers      = "get_all_users"
	CmdUpdateUserStatus = "update_user_status"

	CmdGetFees    = "get_fees"
	CmdAddFee     = "add_fee"
	CmdGetFeeInfo = "get_fee_info"
	CmdEditFee    = "edit_fee_info"
	CmdRemoveFee  = "remove_fee"
	CmdAssignFee  = "assign_fee"
	CmdPayFee     = "pay_fee"
	CmdCheckPay   = "check_payment"

	CmdGetRooms         = "get_rooms"
	CmdGetRoomsDetailed = "get_rooms_detailed"
	CmdGetHousehold     = "get_household_info"
	CmdGetFamily        = "get_family_members"
	CmdAddFamilyMember  = "add_family_member"

	CmdGetNotifications = "get_notifications"
	CmdSendNotification = "send_notification"

	CmdUpdateSettings = "update_settings"
)

// CommandBoundary issues a named command with a JSON-serialisable payload
// and decodes the JSON result into out. out may be nil when the result is
// irrelevant. Backend failures are returned as *domain.CommandError.
type CommandBoundary interface {
	Invoke(ctx context.Context, name string, args any, out any) error
}

// CommandFunc adapts a function to CommandBoundary.
type CommandFunc func(ctx context.Context, name string, args any, out any) error

func (f CommandFunc) Invoke(ctx context.Context, name string, args any, out any) error {
	return f(ctx, name, args, out)
}
