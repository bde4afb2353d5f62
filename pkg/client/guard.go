package client

// LoginRoute is where anonymous callers are redirected when they hit a
// protected view.
const LoginRoute = "/login"

// RouteRule declares whether a view requires authentication and, optionally,
// which roles its navigation entry is shown to. The role list is advisory
// UX state only: the server's gate is the enforcement point and a local
// check can always be bypassed.
type RouteRule struct {
	Path      string
	Protected bool
	NavLabel  string
	NavRoles  []string
}

// Decision is the outcome of a guard check.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard consumes the session store to keep routing and navigation consistent
// with the authentication state.
type Guard struct {
	session *Session
	rules   map[string]RouteRule
}

// NewGuard builds a guard over the given rules.
func NewGuard(session *Session, rules []RouteRule) *Guard {
	indexed := make(map[string]RouteRule, len(rules))
	for _, rule := range rules {
		indexed[rule.Path] = rule
	}
	return &Guard{session: session, rules: indexed}
}

// DefaultRoutes is the application's route table.
func DefaultRoutes() []RouteRule {
	return []RouteRule{
		{Path: "/", NavLabel: "Products"},
		{Path: "/products/:id"},
		{Path: LoginRoute},
		{Path: "/register"},
		{Path: "/cart", Protected: true, NavLabel: "Cart"},
		{Path: "/orders", Protected: true, NavLabel: "My Orders"},
		{Path: "/manage/products", Protected: true, NavLabel: "Manage Products", NavRoles: []string{RoleManager, RoleAdmin}},
		{Path: "/manage/orders", Protected: true, NavLabel: "Manage Orders", NavRoles: []string{RoleManager, RoleAdmin}},
		{Path: "/manage/users", Protected: true, NavLabel: "Manage Users", NavRoles: []string{RoleAdmin}},
	}
}

// Check decides whether the given route may render. Anonymous callers are
// redirected to the login route before any guarded content renders. Unknown
// routes are allowed; they fall through to the application's not-found view.
func (g *Guard) Check(path string) Decision {
	rule, ok := g.rules[path]
	if !ok || !rule.Protected {
		return Decision{Allow: true}
	}
	if !g.session.Current().IsAuthenticated {
		return Decision{Allow: false, RedirectTo: LoginRoute}
	}
	return Decision{Allow: true}
}

// NavItem is a navigation entry the current session may see.
type NavItem struct {
	Path  string
	Label string
}

// Nav returns the navigation entries visible to the current session:
// unprotected entries always, protected entries when authenticated, and
// role-tagged entries only when the decoded principal claims one of the
// tagged roles.
func (g *Guard) Nav(order []RouteRule) []NavItem {
	state := g.session.Current()
	items := make([]NavItem, 0, len(order))
	for _, rule := range order {
		if rule.NavLabel == "" {
			continue
		}
		if rule.Protected && !state.IsAuthenticated {
			continue
		}
		if len(rule.NavRoles) > 0 && !claimsAnyRole(state.Principal, rule.NavRoles) {
			continue
		}
		items = append(items, NavItem{Path: rule.Path, Label: rule.NavLabel})
	}
	return items
}

func claimsAnyRole(principal *Principal, roles []string) bool {
	for _, role := range roles {
		if principal.HasRole(role) {
			return true
		}
	}
	return false
}
