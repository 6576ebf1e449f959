package handler

import (
	"errors"
	"net/http"

	"countrypulse/internal/country"
	"countrypulse/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	c, err := h.service.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, "Country not found")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetOne", "name": name}).Error("failed to get country")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, country.NewView(c))
}
