package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/fairwaylabs/clubfit/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData carries everything a page template can render.
type pageData struct {
	// User is the logged-in username, empty for anonymous visitors.
	User string

	// Flash is the pending one-shot notice, if any.
	Flash string

	// Section is the active dashboard section.
	Section string

	// Fittings backs the fitting-progress and account-history sections.
	Fittings []*models.Fitting

	// Profile backs the profile form.
	Profile *models.Profile
}

// render executes the named template into a buffer first so a template fault
// becomes a clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data *pageData) {
	data.Flash = popFlash(w, r)

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
