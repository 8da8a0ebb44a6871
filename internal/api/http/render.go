package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"market-stand-admin/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageDashboard     = "dashboard"
	pageStands        = "stands"
	pageConfirmDelete = "confirm_delete"
	pageLoading       = "loading"
)

// page is what the layout template receives.
type page struct {
	Title   string
	Active  string
	Refresh bool
	Body    any
}

type renderer struct {
	pages map[string]*template.Template
}

// newRenderer parses every page against the shared layout.
func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageDashboard, pageStands, pageConfirmDelete, pageLoading} {
		t, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *renderer) render(w http.ResponseWriter, status int, name string, p page) {
	t, ok := r.pages[name]
	if !ok {
		http.Error(w, "Unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		logger.Error("Failed to render page", "page", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderLoading shows the spinner for a view whose first fetch has not settled.
func (r *renderer) renderLoading(w http.ResponseWriter, title, active string) {
	r.render(w, http.StatusOK, pageLoading, page{Title: title, Active: active, Refresh: true})
}
