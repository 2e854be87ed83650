package http

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pages that must exist in the embedded template set.
var pageNames = []string{
	"index", "cart", "checkout", "confirmation", "register", "login", "account",
}

// pageData is the envelope every template renders against.
type pageData struct {
	Flashes   []string
	UserEmail string
	Data      any
}

// Renderer holds the parsed HTML templates. Each page is parsed together
// with the shared layout so pages can only reference their own blocks.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render writes the named page with the given envelope.
func (re *Renderer) Render(w http.ResponseWriter, status int, page string, data pageData) error {
	t, ok := re.pages[page]
	if !ok {
		return fmt.Errorf("unknown template %q", page)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return t.ExecuteTemplate(w, "layout", data)
}
