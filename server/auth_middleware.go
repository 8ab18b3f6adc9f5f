package server

import (
	"net/http"

	"github.com/jrsteele09/ular-tangga-admin/session"
)

// RequireSession is middleware for the admin routes. Requests without an
// authenticated session of their own are sent to the login page.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			store, err := session.FromContext(r.Context())
			if err != nil || !store.IsAuthenticated() {
				redirectSuccess(w, r, RouteLogin)
				return
			}

			next(w, r)
		}
	}
}

// isAuthenticated reports whether the request's own visitor is signed in
func isAuthenticated(r *http.Request) bool {
	store, err := session.FromContext(r.Context())
	return err == nil && store.IsAuthenticated()
}
