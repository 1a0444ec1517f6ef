package screens

import "github.com/bluemoon/resident-portal/internal/core/domain"

// DashboardData is the view model of the dashboard root.
type DashboardData struct {
	User *domain.BasicUserInfo
	Menu []MenuItem
}

type FeesData struct {
	Fees   []domain.BasicFeeInfo
	Rooms  []int
	Floors []int
}

type FeeInfoData struct {
	Fee    *domain.DetailedFeeInfo
	Rooms  []int
	Floors []int
}

type HomesData struct {
	Homes []domain.HouseholdInfo
}

// PayableFee is an unpaid fee together with its payment QR codes.
type PayableFee struct {
	domain.FeeRoomInfo
	QRPayload   string
	TransferURL string
}

type HouseholdData struct {
	Household *domain.PersonalHouseholdInfo
	Unpaid    []PayableFee
	Paid      []domain.FeeRoomInfo
}

type FamilyData struct {
	Members []domain.FamilyMember
}

type SettingsData struct {
	ServerURL string
	Allowed   []string
}

type AccountData struct {
	User *domain.BasicUserInfo
}

type NotificationsData struct {
	Notifications []domain.Notification
}

type AccountsData struct {
	Users []domain.BasicUserInfo
}
