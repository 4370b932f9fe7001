package handlers

import (
	"bytes"
	"net/http"

	"github.com/Billy-Davies-2/tierboard/internal/logger"
)

// html renders into memory and only then writes the status, so a template
// failure becomes a clean 500.
func (h *Handlers) html(w http.ResponseWriter, code int, fn func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		logger.Error("Failed to render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	buf.WriteTo(w)
}
