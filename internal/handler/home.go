package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// HomeHandler serves the generated invitation page.
type HomeHandler struct {
	path string
}

// NewHomeHandler creates a HomeHandler for the page at path.
func NewHomeHandler(path string) *HomeHandler {
	return &HomeHandler{path: path}
}

// HandleHome serves the invitation file as it is on disk, so a rebuild is
// picked up without restarting the server.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	f, err := os.Open(h.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "HTML invitation file not found")
			return
		}
		slog.Error("open invitation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		slog.Error("stat invitation", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, filepath.Base(h.path), info.ModTime(), f)
}
