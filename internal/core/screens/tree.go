package screens

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
)

// Backends reports the backend a session talks to.
type Backends interface {
	BackendURL(ctx context.Context) string
	AllowedBackends() []string
}

// Deps are the collaborators of the loaders.
type Deps struct {
	Portal   *service.Portal
	Backends Backends
	Notices  *i18n.Catalog
	Transfer service.BankTransfer
}

// NewTree builds and validates the portal route tree.
func NewTree(d Deps) (*navigation.Tree, error) {
	l := &loaders{Deps: d}
	notice := func(key string) *domain.Notice {
		n := d.Notices.Notice(key)
		return &n
	}

	staff := navigation.RolesOnly(domain.RoleManager, domain.RoleAdmin)
	tenant := navigation.RolesOnly(domain.RoleTenant)
	authed := navigation.Authenticated()

	root := &navigation.Route{View: ViewLanding, Access: navigation.Public(), Children: []*navigation.Route{
		{Path: "login", View: ViewLogin, Access: navigation.Public()},
		{Path: "register", View: ViewRegister, Access: navigation.Public()},
		{Path: "password-reset", View: ViewPasswordReset, Access: navigation.Public()},
		{Path: "dashboard", View: ViewDashboard, Access: authed, Loader: l.dashboard, Children: []*navigation.Route{
			{Path: "fees", View: ViewFees, Access: staff, Loader: l.fees,
				Notice: notice(i18n.LoadFees),
				Children: []*navigation.Route{
					{Path: "info/:feeId", View: ViewFeeInfo, Access: staff, Loader: l.feeInfo,
						Fallback: PathFees, Notice: notice(i18n.LoadFeeInfo)},
				}},
			{Path: "homes", View: ViewHomes, Access: staff, Loader: l.homes, Notice: notice(i18n.LoadHomes)},
			{Path: "household", View: ViewHousehold, Access: tenant, Loader: l.household,
				Notice: notice(i18n.LoadHousehold),
				Children: []*navigation.Route{
					{Path: "family", View: ViewFamily, Access: tenant, Loader: l.family, Notice: notice(i18n.LoadFamily)},
				}},
			{Path: "news", View: ViewNews, Access: authed},
			{Path: "settings", View: ViewSettings, Access: authed, Loader: l.settings},
			{Path: "account", View: ViewAccount, Access: authed, Loader: l.account, Children: []*navigation.Route{
				{Path: "edit", View: ViewAccountEdit, Access: authed, Loader: l.account},
			}},
			{Path: "notifications", View: ViewNotifications, Access: authed, Loader: l.notifications,
				Notice: notice(i18n.LoadNotifications),
				Children: []*navigation.Route{
					{Path: "manager", View: ViewNotificationManager, Access: staff, Loader: l.notifications,
						Notice: notice(i18n.LoadNotifications)},
				}},
			{Path: "admin", Access: navigation.RolesOnly(domain.RoleAdmin), Children: []*navigation.Route{
				{Path: "accounts", View: ViewAdminAccounts, Access: navigation.RolesOnly(domain.RoleAdmin),
					Loader: l.accounts, Notice: notice(i18n.LoadAccounts)},
			}},
		}},
	}}

	tree, err := navigation.NewTree(root)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(PathDashboard); err != nil {
		return nil, fmt.Errorf("invalid route tree: %w", err)
	}
	return tree, nil
}

// NavigatorConfig is the navigation configuration of the portal.
func NavigatorConfig(notices *i18n.Catalog) navigation.Config {
	return navigation.Config{
		LoginPath:     PathLogin,
		HomePath:      PathDashboard,
		LoginRequired: notices.Notice(i18n.LoginRequired),
		AccessDenied:  notices.Notice(i18n.AccessDenied),
		LoadFailed:    notices.Notice(i18n.LoadGeneric),
	}
}

type loaders struct {
	Deps
}

func (l *loaders) dashboard(_ context.Context, req navigation.Request) (any, error) {
	return DashboardData{User: req.Identity, Menu: MenuFor(req.Identity.Role)}, nil
}

func (l *loaders) account(_ context.Context, req navigation.Request) (any, error) {
	return AccountData{User: req.Identity}, nil
}

func (l *loaders) settings(ctx context.Context, _ navigation.Request) (any, error) {
	return SettingsData{
		ServerURL: l.Backends.BackendURL(ctx),
		Allowed:   l.Backends.AllowedBackends(),
	}, nil
}

func (l *loaders) fees(ctx context.Context, _ navigation.Request) (any, error) {
	fees, err := l.Portal.Fees(ctx)
	if err != nil {
		return nil, err
	}
	rooms, err := l.Portal.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	return FeesData{Fees: fees, Rooms: rooms, Floors: service.Floors(rooms)}, nil
}

func (l *loaders) feeInfo(ctx context.Context, req navigation.Request) (any, error) {
	id, err := strconv.Atoi(req.Param("feeId"))
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: fee id %q", domain.ErrNotFound, req.Param("feeId"))
	}
	fee, err := l.Portal.FeeInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	rooms, err := l.Portal.Rooms(ctx)
	if err != nil {
		return nil, err
	}
	return FeeInfoData{Fee: fee, Rooms: rooms, Floors: service.Floors(rooms)}, nil
}

func (l *loaders) homes(ctx context.Context, _ navigation.Request) (any, error) {
	homes, err := l.Portal.RoomsDetailed(ctx)
	if err != nil {
		return nil, err
	}
	return HomesData{Homes: homes}, nil
}

func (l *loaders) household(ctx context.Context, _ navigation.Request) (any, error) {
	h, err := l.Portal.Household(ctx)
	if err != nil {
		return nil, err
	}
	unpaid, paid := service.SplitFeesByPayment(h.Fees)

	payable := make([]PayableFee, 0, len(unpaid))
	for _, f := range unpaid {
		payload, err := service.PaymentQRPayload(f)
		if err != nil {
			return nil, err
		}
		payable = append(payable, PayableFee{
			FeeRoomInfo: f,
			QRPayload:   payload,
			TransferURL: l.Transfer.TransferQRURL(f),
		})
	}
	return HouseholdData{Household: h, Unpaid: payable, Paid: paid}, nil
}

func (l *loaders) family(ctx context.Context, _ navigation.Request) (any, error) {
	members, err := l.Portal.FamilyMembers(ctx)
	if err != nil {
		return nil, err
	}
	return FamilyData{Members: members}, nil
}

func (l *loaders) notifications(ctx context.Context, _ navigation.Request) (any, error) {
	list, err := l.Portal.Notifications(ctx)
	if err != nil {
		return nil, err
	}
	return NotificationsData{Notifications: list}, nil
}

func (l *loaders) accounts(ctx context.Context, _ navigation.Request) (any, error) {
	users, err := l.Portal.AllUsers(ctx)
	if err != nil {
		return nil, err
	}
	return AccountsData{Users: users}, nil
}
