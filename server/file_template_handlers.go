package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/jrsteele09/ular-tangga-admin/shell"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"percent": func(f float64) string {
		return fmt.Sprintf("%.0f%%", f*100)
	},
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// contentTemplates maps each tab to the template rendering its view
var contentTemplates = map[string]string{
	shell.TabOverview:  "admin_overview_content.html",
	shell.TabUsers:     "admin_users_content.html",
	shell.TabQuestions: "admin_questions_content.html",
	shell.TabAnalytics: "admin_analytics_content.html",
}

type pageTemplates struct {
	login    *template.Template
	register *template.Template
	layout   *template.Template
	content  map[string]*template.Template
}

func parsePageTemplates() (*pageTemplates, error) {
	var err error
	p := &pageTemplates{content: make(map[string]*template.Template)}

	if p.login, err = ParseTemplate("login.html"); err != nil {
		return nil, fmt.Errorf("login template: %w", err)
	}
	if p.register, err = ParseTemplate("register.html"); err != nil {
		return nil, fmt.Errorf("register template: %w", err)
	}
	if p.layout, err = ParseTemplate("admin_layout.html"); err != nil {
		return nil, fmt.Errorf("admin layout template: %w", err)
	}
	for tabID, name := range contentTemplates {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("%s content template: %w", tabID, err)
		}
		p.content[tabID] = tmpl
	}
	return p, nil
}
