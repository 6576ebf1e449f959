package handler

import (
	"net/http"
)

// Image serves the latest published summary artifact. 404 until the first
// successful publish.
func (h *Handler) Image(w http.ResponseWriter, r *http.Request) {
	if !h.snapshots.Exists() {
		writeError(w, http.StatusNotFound, "Summary image not found")
		return
	}
	http.ServeFile(w, r, h.snapshots.Path())
}
