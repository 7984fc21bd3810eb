// Package web is the server-rendered frontend: every user action is a plain
// HTTP request that restores the session state, applies one command and
// renders the resulting page from scratch.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/grooming-is/schedule-web/internal/groomapi"
)

//go:embed templates static
var assets embed.FS

var templateFuncs = template.FuncMap{
	"statusClass": statusClass,
}

func statusClass(status string) string {
	switch status {
	case groomapi.StatusDone:
		return "done"
	case groomapi.StatusCanceled:
		return "canceled"
	default:
		return ""
	}
}

func parseTemplates() map[string]*template.Template {
	pages := []string{"login", "schedule", "form", "error"}
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		out[page] = template.Must(
			template.New("layout.html").Funcs(templateFuncs).ParseFS(assets,
				"templates/layout.html",
				"templates/"+page+".html",
			))
	}
	return out
}

// StaticHandler serves the embedded stylesheet under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
