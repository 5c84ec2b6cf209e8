package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers the site routes on the provided mux.
// Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("POST "+reviewActionPath, h.SubmitReview)
	mux.HandleFunc("GET /healthz", h.Healthz)
}
