package server

import (
	"context"
	"html/template"
	"net/http"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
	"github.com/jrsteele09/ular-tangga-admin/server/loginsession"
	"github.com/jrsteele09/ular-tangga-admin/session"
)

// AuthPageData contains data for rendering the login and register pages
type AuthPageData struct {
	AppName string
	Error   string
	Email   string // Preserve email on error
	Name    string // Preserve name on register error
}

// LoginPageUIHandler displays the login page (GET /login)
func (s *Server) LoginPageUIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if isAuthenticated(r) {
			redirectSuccess(w, r, RouteAdminDashboard)
			return
		}
		s.renderAuthPage(w, s.pages.login, http.StatusOK, AuthPageData{
			Error: r.URL.Query().Get("error"),
			Email: r.URL.Query().Get("email"),
		})
	}
}

// LoginSubmissionHandler processes the login form submission (POST /login)
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		result, ok := s.signIn(w, r, func(store *session.Store) session.Result {
			return store.Login(r.Context(), api.Credentials(formPayload(r.PostForm)))
		})
		if !ok {
			return
		}
		if !result.Success {
			s.renderAuthPage(w, s.pages.login, http.StatusUnauthorized, AuthPageData{
				Error: result.Error,
				Email: r.PostForm.Get("email"),
			})
			return
		}

		redirectSuccess(w, r, RouteAdminDashboard)
	}
}

// LogoutHandler ends the visitor's session (POST /logout). It always lands
// on the login page, whatever the collaborator API answered.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if visitor, ok := loginsession.FromContext(r.Context()); ok {
			visitor.Shell.Logout(r.Context())
			s.dropVisitor(r.Context(), visitor.ID)
		}
		s.SetVisitorCookie(w, r, "", -1)
		redirectSuccess(w, r, RouteLogin)
	}
}

// signIn runs attempt on a fresh visitor, so a session id is never reused
// across sign-ins. On success the new visitor replaces the request's
// previous one and its id is set in the cookie. A failed attempt leaves
// nothing behind.
func (s *Server) signIn(w http.ResponseWriter, r *http.Request, attempt func(*session.Store) session.Result) (session.Result, bool) {
	visitor, err := s.visitors.Create(r.Context())
	if err != nil {
		s.logger.Err(err).Msg("Failed to create visitor")
		http.Error(w, "Session unavailable", http.StatusInternalServerError)
		return session.Result{}, false
	}

	result := attempt(visitor.Session)
	if !result.Success {
		s.dropVisitor(r.Context(), visitor.ID)
		return result, true
	}

	if previous, ok := loginsession.FromContext(r.Context()); ok {
		if previous.Session.IsAuthenticated() {
			previous.Shell.Logout(r.Context())
		}
		s.dropVisitor(r.Context(), previous.ID)
	}
	s.SetVisitorCookie(w, r, visitor.ID, visitorCookieMaxAge)
	return result, true
}

func (s *Server) dropVisitor(ctx context.Context, id string) {
	if err := s.visitors.Delete(ctx, id); err != nil && !errors.Is(err, errors.ErrNotFound) {
		s.logger.Err(err).Str("visitor", id).Msg("Failed to delete visitor")
	}
}

func (s *Server) renderAuthPage(w http.ResponseWriter, tmpl *template.Template, status int, data AuthPageData) {
	data.AppName = s.config.GetAppName()
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Err(err).Msg("Failed to render auth page")
	}
}
