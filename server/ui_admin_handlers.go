package server

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/jrsteele09/ular-tangga-admin/server/loginsession"
	"github.com/jrsteele09/ular-tangga-admin/shell"
)

// AdminPageData is the model of admin_layout.html
type AdminPageData struct {
	AppName    string
	Header     shell.Header
	Tabs       []shell.Tab
	ActiveTab  string
	TotalUsers int
	Content    template.HTML
}

// contentData is the model of the per-tab content templates
type contentData struct {
	View   shell.View
	Header shell.Header
	Error  string
}

// AdminDashboardHandler renders the dashboard (GET /admin?tab=<id>&page=<n>).
// The first render after sign-in mounts the shell; switching tabs only
// changes the selection and lets the chosen view fetch its own data.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, ok := loginsession.FromContext(r.Context())
		if !ok {
			redirectSuccess(w, r, RouteLogin)
			return
		}
		sh := visitor.Shell

		sh.Mount(r.Context())
		if tab := r.URL.Query().Get(QueryTab); tab != "" {
			sh.SelectTab(tab)
		}

		view := sh.Content()
		header := sh.Header()
		data := contentData{View: view, Header: header}
		if loader, ok := view.(shell.Loader); ok {
			shell.SetPage(loader, queryPage(r), s.config.GetUsersPageSize())
			if err := loader.Load(r.Context(), s.content, visitor.Session.Token()); err != nil {
				s.logger.Error().Err(err).Str("tab", view.TabID()).Msg("failed to load tab content")
				data.Error = sh.LoadFailed(view)
			}
		}

		var contentBuf strings.Builder
		if err := s.pages.content[view.TabID()].Execute(&contentBuf, data); err != nil {
			s.logger.Err(err).Str("tab", view.TabID()).Msg("Failed to render content")
			http.Error(w, "Failed to render content", http.StatusInternalServerError)
			return
		}

		page := AdminPageData{
			AppName:    s.config.GetAppName(),
			Header:     header,
			Tabs:       sh.Tabs(),
			ActiveTab:  view.TabID(),
			TotalUsers: sh.TotalUsers(),
			Content:    template.HTML(contentBuf.String()),
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := s.pages.layout.Execute(w, page); err != nil {
			s.logger.Err(err).Msg("Failed to render admin layout")
		}
	}
}

// queryPage reads ?page=, where anything unparsable means the first page
func queryPage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get(QueryPage))
	if err != nil {
		return 1
	}
	return page
}
