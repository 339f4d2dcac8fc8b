package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RootHandler serves the static landing page and the content-negotiated 404
// fallback for every unmatched route
type RootHandler struct {
	BaseHandler
	publicDir string
	viewsDir  string
}

// NewRootHandler creates a new root handler serving files from publicDir and
// the 404 page from viewsDir
func NewRootHandler(publicDir, viewsDir string, logger *zap.Logger) *RootHandler {
	return &RootHandler{
		BaseHandler: BaseHandler{logger: logger},
		publicDir:   publicDir,
		viewsDir:    viewsDir,
	}
}

// RegisterRoutes registers the static routes and installs the 404 fallback for
// unmatched paths and unmatched methods
func (h *RootHandler) RegisterRoutes(r chi.Router) {
	fileServer := http.FileServer(http.Dir(h.publicDir))

	r.Get("/", h.Index)
	r.Get("/index.html", h.Index)
	r.Handle("/css/*", fileServer)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)
}

// Index handles GET / and GET /index.html
func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.publicDir, "index.html"))
}

// NotFound answers every unmatched route with a 404 negotiated on the Accept
// header: the HTML page, a JSON message, or plain text.
func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")

	switch {
	case strings.Contains(accept, "text/html"):
		page, err := os.ReadFile(filepath.Join(h.viewsDir, "404.html"))
		if err != nil {
			h.logger.Error("failed to read 404 page", zap.Error(err))
			break
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write(page)
		return
	case strings.Contains(accept, "application/json"):
		h.respondMessage(w, http.StatusNotFound, "404 Not Found.")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("404 Not Found."))
}
