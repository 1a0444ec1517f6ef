// Package screens declares the portal's route tree and the loaders that
// produce each screen's view model.
package screens

// Navigable paths.
const (
	PathLanding       = "/"
	PathLogin         = "/login"
	PathRegister      = "/register"
	PathPasswordReset = "/password-reset"

	PathDashboard           = "/dashboard"
	PathFees                = "/dashboard/fees"
	PathFeeInfo             = "/dashboard/fees/info/:feeId"
	PathHomes               = "/dashboard/homes"
	PathHousehold           = "/dashboard/household"
	PathFamily              = "/dashboard/household/family"
	PathNews                = "/dashboard/news"
	PathSettings            = "/dashboard/settings"
	PathAccount             = "/dashboard/account"
	PathAccountEdit         = "/dashboard/account/edit"
	PathNotifications       = "/dashboard/notifications"
	PathNotificationManager = "/dashboard/notifications/manager"
	PathAdmin               = "/dashboard/admin"
	PathAdminAccounts       = "/dashboard/admin/accounts"
)

// View names, one template each.
const (
	ViewLanding             = "landing"
	ViewLogin               = "login"
	ViewRegister            = "register"
	ViewPasswordReset       = "password_reset"
	ViewDashboard           = "dashboard"
	ViewFees                = "fees"
	ViewFeeInfo             = "fee_info"
	ViewHomes               = "homes"
	ViewHousehold           = "household"
	ViewFamily              = "family"
	ViewNews                = "news"
	ViewSettings            = "settings"
	ViewAccount             = "account"
	ViewAccountEdit         = "account_edit"
	ViewNotifications       = "notifications"
	ViewNotificationManager = "notification_manager"
	ViewAdminAccounts       = "admin_accounts"
)
