package handler

import (
	"errors"
	"net/http"

	"countrypulse/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type DeleteResponse struct {
	Success bool `json:"success"`
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.service.Delete(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Delete", "name": name}).Error("failed to delete country")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, DeleteResponse{Success: true})
}
