package handler

import (
	"errors"
	"net/http"

	"countrypulse/internal/domain"

	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	Success         bool   `json:"success"`
	TotalCountries  int64  `json:"total_countries"`
	LastRefreshedAt string `json:"last_refreshed_at"`
}

// Refresh runs one end-to-end refresh. A source failure maps to 503 with the
// failing source named; everything else is a generic 500 with no internal
// detail leaked.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refresher.Run(r.Context())
	if err != nil {
		var srcErr *domain.SourceUnavailableError
		if errors.As(err, &srcErr) {
			logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh", "source": srcErr.Source}).Warn("refresh aborted, source unavailable")
			writeErrorDetails(w, http.StatusServiceUnavailable, "External data source unavailable", sourceDetail(srcErr.Source))
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh"}).Error("refresh failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		Success:         true,
		TotalCountries:  result.Total,
		LastRefreshedAt: result.LastRefreshedAt,
	})
}

func sourceDetail(source domain.Source) string {
	switch source {
	case domain.SourceCountries:
		return "Could not fetch data from Rest Countries API"
	case domain.SourceExchange:
		return "Could not fetch data from Exchange Rates API"
	}
	return ""
}
