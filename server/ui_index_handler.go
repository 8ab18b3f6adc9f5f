package server

import (
	"net/http"
)

// IndexHandler sends the visitor to the dashboard or the login page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAuthenticated(r) {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}
		redirectSuccess(w, r, RouteLogin)
	}
}
