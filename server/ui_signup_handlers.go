package server

import (
	"net/http"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/session"
)

// RegisterGetHandler renders the registration page
func (s *Server) RegisterGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAuthenticated(r) {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}
		s.renderAuthPage(w, s.pages.register, http.StatusOK, AuthPageData{
			Error: r.URL.Query().Get("error"),
		})
	}
}

// RegisterPostHandler handles registration form submission. A successful
// registration signs the new account straight in.
func (s *Server) RegisterPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		result, ok := s.signIn(w, r, func(store *session.Store) session.Result {
			return store.Register(r.Context(), api.RegistrationData(formPayload(r.PostForm)))
		})
		if !ok {
			return
		}
		if !result.Success {
			s.renderAuthPage(w, s.pages.register, http.StatusUnprocessableEntity, AuthPageData{
				Error: result.Error,
				Email: r.PostForm.Get("email"),
				Name:  r.PostForm.Get("name"),
			})
			return
		}

		redirectSuccess(w, r, RouteAdminDashboard)
	}
}
