// Package navigation implements guarded, role-gated navigation over a static
// route tree. A navigation either renders the target screen with the data its
// loader produced or redirects to a fallback with a notice. It never renders a
// partially loaded screen.
package navigation

import (
	"context"
	"errors"
	"net/url"

	"github.com/bluemoon/resident-portal/internal/core/domain"
)

type accessKind uint8

const (
	accessPublic accessKind = iota
	accessAuthenticated
	accessRoles
)

// Access is the guard requirement declared by a route.
type Access struct {
	kind  accessKind
	roles domain.RoleSet
}

// Public routes need no session.
func Public() Access { return Access{kind: accessPublic} }

// Authenticated routes need a valid session of any role.
func Authenticated() Access { return Access{kind: accessAuthenticated} }

// RolesOnly routes need a valid session whose role is one of roles.
func RolesOnly(roles ...domain.Role) Access {
	return Access{kind: accessRoles, roles: domain.Roles(roles...)}
}

// IsPublic reports whether the requirement is satisfied without a session.
func (a Access) IsPublic() bool { return a.kind == accessPublic }

// Allows reports whether role satisfies a role requirement. Authenticated
// requirements allow every known role.
func (a Access) Allows(role domain.Role) bool {
	switch a.kind {
	case accessPublic:
		return true
	case accessAuthenticated:
		return role != domain.RoleUnknown
	default:
		return a.roles.Contains(role)
	}
}

func (a Access) String() string {
	switch a.kind {
	case accessPublic:
		return "public"
	case accessAuthenticated:
		return "authenticated"
	default:
		return "roles"
	}
}

// Request is what a loader receives once the guards passed.
type Request struct {
	Path     string
	Params   map[string]string
	Query    url.Values
	Identity *domain.BasicUserInfo
}

// Param returns the value of a :name path parameter.
func (r Request) Param(name string) string {
	return r.Params[name]
}

// LoaderFunc fetches the view model of a route. It must not cache across calls.
type LoaderFunc func(ctx context.Context, req Request) (any, error)

// Route is a static node of the route tree.
type Route struct {
	// Path is one or more segments relative to the parent, e.g. "info/:feeId".
	Path string
	// View names the template rendered for the route. Routes without a view
	// are layouts and cannot be navigated to directly.
	View   string
	Access Access
	Loader LoaderFunc

	// Fallback and Notice are used when the loader fails.
	Fallback string
	Notice   *domain.Notice
	// DeniedTo overrides where a failed role guard redirects.
	DeniedTo string

	Children []*Route

	pattern string
}

// Pattern is the full path template of the route, set when the tree is built.
func (r *Route) Pattern() string { return r.pattern }

// Failure lets a loader choose its own redirect target and notice.
type Failure struct {
	To     string
	Notice *domain.Notice
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return "navigation failure"
	}
	return f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// ErrNoRoute is returned when a path matches no navigable route.
var ErrNoRoute = errors.New("no such route")
