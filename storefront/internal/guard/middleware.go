package guard

import (
	"net/http"

	"github.com/wtfrudb/movie-catalog/storefront/internal/domain"
)

// SessionFunc extracts the session of the browser making the request.
type SessionFunc func(r *http.Request) domain.Session

// Middleware runs Decide for every request and answers 303 See Other when
// the destination is not allowed.
func Middleware(sessionOf SessionFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(r.URL.Path, sessionOf(r))
			if !d.Allow {
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
