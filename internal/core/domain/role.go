package domain

import (
	"fmt"
	"strings"
)

// Role is the access level of an authenticated identity. The zero value is
// RoleUnknown and never satisfies a role requirement.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleManager
	RoleTenant
)

// ParseRole converts the backend's wire representation into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "manager":
		return RoleManager, nil
	case "tenant":
		return RoleTenant, nil
	default:
		return RoleUnknown, fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleManager:
		return "manager"
	case RoleTenant:
		return "tenant"
	default:
		return "unknown"
	}
}

// Label is the name shown to users in the header and account screens.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Quản trị viên"
	case RoleManager:
		return "Quản lý"
	case RoleTenant:
		return "Hộ dân"
	default:
		return "Khách"
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if r == RoleUnknown {
		return nil, ErrInvalidRole
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleSet is an unordered set of roles allowed on a route.
type RoleSet map[Role]struct{}

// Roles builds a RoleSet.
func Roles(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether r belongs to the set. RoleUnknown is never a member.
func (s RoleSet) Contains(r Role) bool {
	if r == RoleUnknown {
		return false
	}
	_, ok := s[r]
	return ok
}
