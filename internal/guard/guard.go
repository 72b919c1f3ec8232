package guard

import (
	"strings"

	"github.com/FryoPie/Student-portal/internal/models"
)

// AuthState is the read-only view of the session the guard consults. The
// auth controller satisfies it; the guard never mutates the session.
type AuthState interface {
	IsAuthenticated() bool
	CurrentUser() (models.User, bool)
}

// Route pairs a navigable path with its protection level. A route that is
// not protected is reachable by any session state; a protected route with a
// required role is reachable only by sessions holding that role.
type Route struct {
	Path         string
	Protected    bool
	RequiredRole models.Role
}

// Routes is the portal's static route table.
var Routes = []Route{
	{Path: "/"},
	{Path: "/login"},
	{Path: "/register"},
	{Path: "/profile/:id"},
	{Path: "/dashboard", Protected: true},
	{Path: "/profile", Protected: true},
	{Path: "/achievements", Protected: true},
	{Path: "/coordinator", Protected: true, RequiredRole: models.RoleCoordinator},
}

// State of a single navigation attempt.
type State int

const (
	Unchecked State = iota
	Permitted
	Redirected
)

// Decision is the outcome of evaluating one navigation. Target is set only
// when the navigation was redirected.
type Decision struct {
	State  State
	Target string
}

type Guard struct {
	auth AuthState
}

func New(auth AuthState) *Guard {
	return &Guard{auth: auth}
}

// Evaluate decides whether the requested path is reachable given the current
// session. It runs on every navigation; nothing is cached because login and
// logout can change the answer between two attempts.
func (g *Guard) Evaluate(path string) Decision {
	route, ok := match(path)
	if !ok {
		// Unknown paths fall through to the landing page.
		return Decision{State: Redirected, Target: "/"}
	}
	if !route.Protected {
		return Decision{State: Permitted}
	}

	if !g.auth.IsAuthenticated() {
		return Decision{State: Redirected, Target: "/login"}
	}

	user, _ := g.auth.CurrentUser()
	if route.RequiredRole != "" && user.Role != route.RequiredRole {
		return Decision{State: Redirected, Target: Home(user.Role)}
	}
	return Decision{State: Permitted}
}

// Home is the default landing page for a role, used both after login and as
// the redirect target for a role mismatch.
func Home(role models.Role) string {
	if role == models.RoleCoordinator {
		return "/coordinator"
	}
	return "/dashboard"
}

func match(path string) (Route, bool) {
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	for _, r := range Routes {
		if r.Path == path {
			return r, true
		}
	}
	// Public profile carries an identifier segment.
	if strings.HasPrefix(path, "/profile/") && strings.Count(path, "/") == 2 {
		return Route{Path: "/profile/:id"}, true
	}
	return Route{}, false
}
