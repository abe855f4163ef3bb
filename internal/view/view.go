// Package view renders the HTML pages from templates embedded in the
// binary. Every page is parsed together with the shared layout at
// startup; fragments (partial responses for in-page updates) are parsed
// standalone.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var content embed.FS

var funcs = template.FuncMap{
	// stars yields the five star positions of the rating widget.
	"stars": func() []int { return []int{1, 2, 3, 4, 5} },
	// filled reports whether a star position is lit for a rating.
	"filled": func(star int, rating float64) bool { return rating >= float64(star) },
	"roleBadge": func(role string) string {
		return strings.ToUpper(strings.ReplaceAll(role, "_", " "))
	},
	"fmt1":    func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"fmt2":    func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"tofloat": func(i int) float64 { return float64(i) },
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	pages, err := fs.ReadDir(content, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("view: read pages: %w", err)
	}
	for _, p := range pages {
		name := strings.TrimSuffix(p.Name(), ".html")
		t, err := template.New(p.Name()).Funcs(funcs).
			ParseFS(content, "templates/layout.html", "templates/pages/"+p.Name())
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", p.Name(), err)
		}
		r.pages[name] = t
	}

	fragments, err := fs.ReadDir(content, "templates/fragments")
	if err != nil {
		return nil, fmt.Errorf("view: read fragments: %w", err)
	}
	for _, f := range fragments {
		name := strings.TrimSuffix(f.Name(), ".html")
		t, err := template.New(f.Name()).Funcs(funcs).
			ParseFS(content, "templates/fragments/"+f.Name())
		if err != nil {
			return nil, fmt.Errorf("view: parse fragment %s: %w", f.Name(), err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// Render satisfies echo.Renderer. Pages execute through the layout;
// fragments execute directly.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	if t.Lookup("layout") != nil {
		return t.ExecuteTemplate(w, "layout", data)
	}
	return t.ExecuteTemplate(w, t.Name(), data)
}
