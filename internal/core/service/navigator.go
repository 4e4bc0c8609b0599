package service

import (
	"github.com/skillsling/marketplace/internal/core/domain"
)

// Decision is the outcome of resolving a path: either a screen to render or
// a location to redirect to.
type Decision struct {
	Screen   domain.Screen
	Redirect string
	// Gated is true when Redirect comes from a failed role check rather than
	// a plain alias.
	Gated bool
}

// Navigator maps (session, path) to a screen, applying role gates.
type Navigator struct {
	routes map[string]domain.Route
}

func NewNavigator(routes []domain.Route) *Navigator {
	m := make(map[string]domain.Route, len(routes))
	for _, r := range routes {
		m[r.Path] = r
	}
	return &Navigator{routes: m}
}

// Resolve decides what path renders for user (nil when signed out).
func (n *Navigator) Resolve(path string, user *domain.User) (Decision, error) {
	r, ok := n.routes[path]
	if !ok {
		return Decision{}, domain.ErrUnknownRoute
	}
	if r.Redirect != "" {
		return Decision{Redirect: r.Redirect}, nil
	}
	if !r.Allows(user) {
		return Decision{Redirect: r.Fallback, Gated: true}, nil
	}
	return Decision{Screen: r.Screen}, nil
}
