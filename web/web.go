package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
)

//go:embed templates static
var files embed.FS

// Templates holds the parsed page templates, keyed by page name. Each page
// is parsed against the shared base layout.
type Templates struct {
	templates map[string]*template.Template
}

func NewTemplates() *Templates {
	const base = "templates/base.html"

	pages := []string{"index", "transcript", "error"}
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		templates[page] = template.Must(template.ParseFS(files, base, "templates/"+page+".html"))
	}

	return &Templates{templates: templates}
}

func (t *Templates) Render(w io.Writer, name string, data any) error {
	tmpl, exists := t.templates[name]
	if !exists {
		return fmt.Errorf("template %s not found", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

// StaticHandler serves the embedded static assets under /static/.
func StaticHandler() http.Handler {
	return http.FileServerFS(files)
}
