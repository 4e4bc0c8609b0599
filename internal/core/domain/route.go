package domain

// Screen identifies a renderable view.
type Screen string

const (
	ScreenAuth              Screen = "auth"
	ScreenProviders         Screen = "providers"
	ScreenProviderCreate    Screen = "provider_create"
	ScreenProviderDashboard Screen = "provider_dashboard"
	ScreenClientDashboard   Screen = "client_dashboard"
	ScreenProfile           Screen = "profile"
	ScreenSearch            Screen = "search"
)

const (
	PathRoot              = "/"
	PathAuth              = "/auth"
	PathProviders         = "/providers"
	PathProviderCreate    = "/provider/create"
	PathProviderDashboard = "/provider"
	PathClientDashboard   = "/client"
	PathProfile           = "/profile"
	PathSearch            = "/search"
)

// Route describes one navigable destination. An empty Requires means public;
// a non-empty Redirect means the path never renders.
type Route struct {
	Path     string
	Screen   Screen
	Requires Role
	Fallback string
	Redirect string
}

// Routes is the fixed destination table.
var Routes = []Route{
	{Path: PathAuth, Screen: ScreenAuth},
	{Path: PathProviders, Screen: ScreenProviders},
	{Path: PathProviderCreate, Screen: ScreenProviderCreate, Requires: RoleProvider, Fallback: PathAuth},
	{Path: PathProviderDashboard, Screen: ScreenProviderDashboard, Requires: RoleProvider, Fallback: PathAuth},
	{Path: PathClientDashboard, Screen: ScreenClientDashboard, Requires: RoleClient, Fallback: PathAuth},
	{Path: PathProfile, Screen: ScreenProfile},
	{Path: PathSearch, Screen: ScreenSearch},
	{Path: PathRoot, Redirect: PathProviders},
}

// Allows reports whether u may render the route.
func (r Route) Allows(u *User) bool {
	if r.Requires == "" {
		return true
	}
	return u.HasRole(r.Requires)
}
