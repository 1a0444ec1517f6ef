package service

import (
	"context"
	"fmt"

	"github.com/bluemoon/resident-portal/internal/core/domain"
	"github.com/bluemoon/resident-portal/internal/core/ports"
)

// Portal exposes typed wrappers over every screen command of the boundary.
// Each call is a fresh round trip; nothing is cached.
type Portal struct {
	cmd ports.CommandBoundary
}

func NewPortal(cmd ports.CommandBoundary) *Portal {
	return &Portal{cmd: cmd}
}

// --- account ---

func (p *Portal) UpdateUserInfo(ctx context.Context, info domain.UpdateUserInfo) error {
	info.Username = NormalizeUsername(info.Username)
	return p.cmd.Invoke(ctx, ports.CmdUpdateUserInfo, map[string]any{"info": info}, nil)
}

func (p *Portal) UpdatePassword(ctx context.Context, info domain.UpdatePasswordInfo) error {
	return p.cmd.Invoke(ctx, ports.CmdUpdatePassword, map[string]any{"info": info}, nil)
}

func (p *Portal) UpdateSettings(ctx context.Context, s domain.Settings) error {
	return p.cmd.Invoke(ctx, ports.CmdUpdateSettings, map[string]any{"data": s}, nil)
}

// --- admin ---

func (p *Portal) AllUsers(ctx context.Context) ([]domain.BasicUserInfo, error) {
	var users []domain.BasicUserInfo
	if err := p.cmd.Invoke(ctx, ports.CmdGetAllUsers, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (p *Portal) UpdateUserStatus(ctx context.Context, userID int, status domain.AccountStatus) error {
	if status != domain.StatusActive && status != domain.StatusInactive {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidPayload, status)
	}
	return p.cmd.Invoke(ctx, ports.CmdUpdateUserStatus, map[string]any{"userId": userID, "status": status}, nil)
}

// --- fees ---

func (p *Portal) Fees(ctx context.Context) ([]domain.BasicFeeInfo, error) {
	var fees []domain.BasicFeeInfo
	if err := p.cmd.Invoke(ctx, ports.CmdGetFees, nil, &fees); err != nil {
		return nil, err
	}
	return fees, nil
}

func (p *Portal) FeeInfo(ctx context.Context, feeID int) (*domain.DetailedFeeInfo, error) {
	var fee domain.DetailedFeeInfo
	if err := p.cmd.Invoke(ctx, ports.CmdGetFeeInfo, map[string]any{"feeId": feeID}, &fee); err != nil {
		return nil, err
	}
	return &fee, nil
}

func (p *Portal) AddFee(ctx context.Context, info domain.FeeInput) error {
	return p.cmd.Invoke(ctx, ports.CmdAddFee, map[string]any{"info": info}, nil)
}

func (p *Portal) EditFee(ctx context.Context, feeID int, info domain.FeeInput) error {
	return p.cmd.Invoke(ctx, ports.CmdEditFee, map[string]any{"id": feeID, "info": info}, nil)
}

func (p *Portal) RemoveFee(ctx context.Context, feeID int) error {
	return p.cmd.Invoke(ctx, ports.CmdRemoveFee, map[string]any{"id": feeID}, nil)
}

func (p *Portal) AssignFee(ctx context.Context, feeID int, rooms []int) error {
	if len(rooms) == 0 {
		return fmt.Errorf("%w: no rooms selected", domain.ErrInvalidPayload)
	}
	return p.cmd.Invoke(ctx, ports.CmdAssignFee, map[string]any{"feeId": feeID, "roomNumbers": rooms}, nil)
}

// PayFee starts a payment for a fee of the tenant's household.
func (p *Portal) PayFee(ctx context.Context, feeID int) error {
	return p.cmd.Invoke(ctx, ports.CmdPayFee, map[string]any{"feeId": feeID}, nil)
}

// CheckPayment reports whether the payment of an assignment was received.
func (p *Portal) CheckPayment(ctx context.Context, assignmentID int) (bool, error) {
	var paid bool
	if err := p.cmd.Invoke(ctx, ports.CmdCheckPay, map[string]any{"id": assignmentID}, &paid); err != nil {
		return false, err
	}
	return paid, nil
}

// --- rooms and households ---

func (p *Portal) Rooms(ctx context.Context) ([]int, error) {
	var rooms []int
	if err := p.cmd.Invoke(ctx, ports.CmdGetRooms, nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (p *Portal) RoomsDetailed(ctx context.Context) ([]domain.HouseholdInfo, error) {
	var homes []domain.HouseholdInfo
	if err := p.cmd.Invoke(ctx, ports.CmdGetRoomsDetailed, nil, &homes); err != nil {
		return nil, err
	}
	return homes, nil
}

func (p *Portal) Household(ctx context.Context) (*domain.PersonalHouseholdInfo, error) {
	var h domain.PersonalHouseholdInfo
	if err := p.cmd.Invoke(ctx, ports.CmdGetHousehold, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (p *Portal) FamilyMembers(ctx context.Context) ([]domain.FamilyMember, error) {
	var members []domain.FamilyMember
	if err := p.cmd.Invoke(ctx, ports.CmdGetFamily, nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (p *Portal) AddFamilyMember(ctx context.Context, m domain.FamilyMember) error {
	return p.cmd.Invoke(ctx, ports.CmdAddFamilyMember, map[string]any{"member": m}, nil)
}

// --- notifications ---

func (p *Portal) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var list []domain.Notification
	if err := p.cmd.Invoke(ctx, ports.CmdGetNotifications, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SendNotification delivers a message to one user or, with SendAll, to every
// resident. ToUser is dropped when SendAll is set.
func (p *Portal) SendNotification(ctx context.Context, in domain.NotificationInput) error {
	if in.SendAll {
		in.ToUser = nil
	} else if in.ToUser == nil || *in.ToUser == "" {
		return fmt.Errorf("%w: missing recipient", domain.ErrInvalidPayload)
	}
	return p.cmd.Invoke(ctx, ports.CmdSendNotification, map[string]any{"info": in}, nil)
}
