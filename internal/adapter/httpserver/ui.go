package httpserver

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

var uiTemplates = template.Must(template.ParseFS(templateFiles, "templates/*.html"))

// UIHandler renders the single-page interface. All transient state (the
// extracted text, the current result list) lives in the browser; the page
// only talks to the JSON API.
func (s *Server) UIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := struct {
			CharLimit   int
			MaxUploadMB int64
		}{
			CharLimit:   s.Cfg.AdvertisedCharLimit,
			MaxUploadMB: s.Cfg.MaxUploadMB,
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := uiTemplates.ExecuteTemplate(w, "index.html", data); err != nil {
			http.Error(w, "Template error", http.StatusInternalServerError)
		}
	}
}

// MountUI mounts the page and its embedded static assets.
func (s *Server) MountUI(r chi.Router) {
	r.Get("/", s.UIHandler())
	if staticFS, err := fs.Sub(staticFiles, "static"); err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}
}
