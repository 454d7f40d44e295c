// Package guard decides whether a page renders or the user is redirected,
// based on session state and the page's role requirements.
package guard

import "github.com/netdash/netdash/internal/model"

// Page names the navigable dashboard pages.
type Page string

const (
	PageLogin     Page = "login"
	PageDashboard Page = "dashboard"
	PageInventory Page = "inventory"
	PageUsers     Page = "users"
)

// Requirements describes what a page demands of the session.
type Requirements struct {
	RequireAuth   bool
	RequireAdmin  bool
	RequireViewer bool
}

// Decision is the outcome of a guard check.
type Decision struct {
	Render   bool
	Redirect Page
	// ReturnTo carries the originally requested page when redirecting to
	// login, for post-login return.
	ReturnTo Page
}

// Decide evaluates the guard rules in order, first match wins. It is a pure
// function re-evaluated on every navigation, never cached.
func Decide(requested Page, req Requirements, authenticated bool, role model.Role) Decision {
	if !req.RequireAuth {
		return Decision{Render: true}
	}
	if !authenticated {
		return Decision{Redirect: PageLogin, ReturnTo: requested}
	}
	if req.RequireAdmin && role != model.RoleAdministrator {
		return Decision{Redirect: PageDashboard}
	}
	if req.RequireViewer && role != model.RoleViewer {
		return Decision{Redirect: PageDashboard}
	}
	return Decision{Render: true}
}

// PageRequirements returns the standing requirements for each page.
func PageRequirements(p Page) Requirements {
	switch p {
	case PageLogin:
		return Requirements{}
	case PageUsers:
		return Requirements{RequireAuth: true, RequireAdmin: true}
	default:
		return Requirements{RequireAuth: true}
	}
}
