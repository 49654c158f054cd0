package catalog

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin/render"
	"github.com/supakorn-kn/go-library/forms"
)

const baseTemplate = "templates/base.html"

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"date": func(t *time.Time) string {
		return forms.FormatDate(t)
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"fieldError": func(fieldErrors forms.FieldErrors, field string) string {
		return fieldErrors[field]
	},
	"relative": func(t *time.Time) string {

		if t == nil {
			return ""
		}

		return humanize.Time(*t)
	},
}

// Renderer executes one template set per page, each made of the base layout and the page.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {

	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	renderer := &Renderer{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {

		if page == baseTemplate {
			continue
		}

		name := strings.TrimSuffix(path.Base(page), ".html")

		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, baseTemplate, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		renderer.templates[name] = tmpl
	}

	return renderer, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {

	return render.HTML{
		Template: r.templates[name],
		Name:     "base",
		Data:     data,
	}
}
