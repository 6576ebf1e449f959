package handler

import (
	"net/http"

	"countrypulse/internal/country"
	"countrypulse/internal/domain"

	"github.com/sirupsen/logrus"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.CountryFilter{
		Region:       r.URL.Query().Get("region"),
		CurrencyCode: r.URL.Query().Get("currency"),
	}
	// unknown sort values are ignored, not rejected
	switch r.URL.Query().Get("sort") {
	case "gdp_desc":
		filter.Sort = domain.SortGDPDesc
	case "gdp_asc":
		filter.Sort = domain.SortGDPAsc
	}

	countries, err := h.service.List(r.Context(), filter)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "List"}).Error("failed to list countries")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, country.NewViews(countries))
}
