// Package guard decides whether a browser may reach a destination.
package guard

import (
	"strings"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

const (
	LoginPath    = "/login"
	RegisterPath = "/register"
	CatalogPath  = "/catalog"
	CartPath     = "/cart"
	OrdersPath   = "/orders"
	AdminPath    = "/admin"
)

type Access int

const (
	AccessUnknown Access = iota
	AccessPublic
	AccessAuthenticated
	AccessAdmin
)

var routes = map[string]Access{
	LoginPath:    AccessPublic,
	RegisterPath: AccessPublic,
	CatalogPath:  AccessAuthenticated,
	CartPath:     AccessAuthenticated,
	OrdersPath:   AccessAuthenticated,
	AdminPath:    AccessAdmin,
}

type Decision struct {
	Allow    bool
	Redirect string
}

func allow() Decision { return Decision{Allow: true} }

func redirect(to string) Decision { return Decision{Redirect: to} }

// AccessFor classifies a path by its first segment, so "/cart/items/3"
// shares the rule of "/cart".
func AccessFor(path string) Access {
	trimmed := strings.Trim(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return routes["/"+trimmed]
}

// Decide is evaluated on every navigation. A browser without the admin
// role is sent to the login page, as an anonymous one is, so protected
// routes are not revealed.
func Decide(destination string, s domain.Session) Decision {
	switch AccessFor(destination) {
	case AccessPublic:
		return allow()
	case AccessAuthenticated:
		if !s.Authenticated {
			return redirect(LoginPath)
		}
		return allow()
	case AccessAdmin:
		if !s.Authenticated || !s.IsAdmin {
			return redirect(LoginPath)
		}
		return allow()
	default:
		return redirect(Home(s))
	}
}

// Home is where a browser lands when it asks for nothing in particular.
func Home(s domain.Session) string {
	switch {
	case s.Authenticated && s.IsAdmin:
		return AdminPath
	case s.Authenticated:
		return CatalogPath
	default:
		return LoginPath
	}
}
