package screens

import "github.com/bluemoon/resident-portal/internal/core/domain"

// MenuItem is a dashboard tile.
type MenuItem struct {
	Title string
	Href  string
}

// MenuFor assembles the dashboard tiles of a role.
func MenuFor(role domain.Role) []MenuItem {
	common := []MenuItem{
		{Title: "Thông báo", Href: PathNotifications},
		{Title: "Tin tức", Href: PathNews},
		{Title: "Tài khoản", Href: PathAccount},
		{Title: "Cài đặt", Href: PathSettings},
	}

	var items []MenuItem
	switch role {
	case domain.RoleAdmin:
		items = []MenuItem{
			{Title: "Khoản thu", Href: PathFees},
			{Title: "Cư dân", Href: PathHomes},
			{Title: "Gửi thông báo", Href: PathNotificationManager},
			{Title: "Quản lý tài khoản", Href: PathAdminAccounts},
		}
	case domain.RoleManager:
		items = []MenuItem{
			{Title: "Khoản thu", Href: PathFees},
			{Title: "Cư dân", Href: PathHomes},
			{Title: "Gửi thông báo", Href: PathNotificationManager},
		}
	case domain.RoleTenant:
		items = []MenuItem{
			{Title: "Hộ gia đình", Href: PathHousehold},
			{Title: "Thành viên", Href: PathFamily},
		}
	case domain.RoleUnknown:
		return nil
	}
	return append(items, common...)
}
