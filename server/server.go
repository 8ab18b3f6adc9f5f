package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/ular-tangga-admin/internal/config"
	"github.com/jrsteele09/ular-tangga-admin/server/loginsession"
	"github.com/jrsteele09/ular-tangga-admin/shell"
	"github.com/rs/zerolog"
)

// Server serves the admin UI. Every browser gets its own session, found
// through the visitor cookie.
type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	logger   zerolog.Logger
	visitors loginsession.Repo
	content  shell.ContentSource
	pages    *pageTemplates
}

func New(cfg config.Config, visitors loginsession.Repo, content shell.ContentSource, logger zerolog.Logger) (*Server, error) {
	pages, err := parsePageTemplates()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}

	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		logger:   logger,
		visitors: visitors,
		content:  content,
		pages:    pages,
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			s.logRoute(parts[0], parts[1])
		} else {
			s.logRoute("", parts[0])
		}
	}
}

func (s *Server) logRoute(method, path string) {
	s.logger.Debug().Str("method", s.colouredMethod(method)).Str("path", path).Msg("route")
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
