package navigation

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Tree is an immutable route tree rooted at "/".
type Tree struct {
	root     *Route
	patterns map[string]*Route
}

// Match is the result of resolving a path against the tree.
type Match struct {
	// Chain holds the routes from the root to the matched leaf.
	Chain  []*Route
	Params map[string]string
}

// Leaf is the matched route itself.
func (m Match) Leaf() *Route { return m.Chain[len(m.Chain)-1] }

// NewTree builds a tree from root, whose own Path is ignored and treated as "/".
func NewTree(root *Route) (*Tree, error) {
	t := &Tree{root: root, patterns: make(map[string]*Route)}
	if err := t.index(root, "/"); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) index(r *Route, pattern string) error {
	if prev, ok := t.patterns[pattern]; ok && prev != r {
		return fmt.Errorf("duplicate route %s", pattern)
	}
	r.pattern = pattern
	t.patterns[pattern] = r
	for _, child := range r.Children {
		segment := strings.Trim(child.Path, "/")
		if segment == "" {
			return fmt.Errorf("route under %s has an empty path", pattern)
		}
		if err := t.index(child, path.Join(pattern, segment)); err != nil {
			return err
		}
	}
	return nil
}

// Route returns the route registered under pattern.
func (t *Tree) Route(pattern string) (*Route, bool) {
	r, ok := t.patterns[pattern]
	return r, ok
}

// Match resolves p to a navigable route. Children are tried in declaration
// order so static siblings should precede parameterised ones.
func (t *Tree) Match(p string) (Match, bool) {
	segs := splitPath(p)
	params := map[string]string{}
	chain, ok := matchRoute(t.root, segs, params, []*Route{t.root})
	if !ok || chain[len(chain)-1].View == "" {
		return Match{}, false
	}
	return Match{Chain: chain, Params: params}, true
}

func matchRoute(r *Route, segs []string, params map[string]string, chain []*Route) ([]*Route, bool) {
	if len(segs) == 0 {
		return chain, true
	}
	for _, child := range r.Children {
		pat := splitPath(child.Path)
		if len(pat) > len(segs) {
			continue
		}
		captured, ok := matchSegments(pat, segs[:len(pat)])
		if !ok {
			continue
		}
		next := append(append([]*Route(nil), chain...), child)
		if found, ok := matchRoute(child, segs[len(pat):], params, next); ok {
			for k, v := range captured {
				params[k] = v
			}
			return found, true
		}
	}
	return nil, false
}

func matchSegments(pattern, segs []string) (map[string]string, bool) {
	var captured map[string]string
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if captured == nil {
				captured = make(map[string]string)
			}
			captured[name] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return captured, true
}

func splitPath(p string) []string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// Validate checks the structural invariants of the tree: every route under
// the protected prefix carries at least an authenticated guard, role guards
// name at least one role, and every loader belongs to a navigable route.
func (t *Tree) Validate(protectedPrefix string) error {
	var errs []error
	for pattern, r := range t.patterns {
		if underPrefix(pattern, protectedPrefix) && r.Access.IsPublic() {
			errs = append(errs, fmt.Errorf("route %s must not be public", pattern))
		}
		if r.Access.kind == accessRoles && len(r.Access.roles) == 0 {
			errs = append(errs, fmt.Errorf("route %s has an empty role set", pattern))
		}
		if r.Loader != nil && r.View == "" {
			errs = append(errs, fmt.Errorf("route %s has a loader but no view", pattern))
		}
	}
	return errors.Join(errs...)
}

// Walk visits every route in depth-first declaration order.
func (t *Tree) Walk(fn func(r *Route)) {
	var walk func(r *Route)
	walk = func(r *Route) {
		fn(r)
		for _, c := range r.Children {
			walk(c)
		}
	}
	walk(t.root)
}

func underPrefix(pattern, prefix string) bool {
	return pattern == prefix || strings.HasPrefix(pattern, prefix+"/")
}
