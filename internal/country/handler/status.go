package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type StatusResponse struct {
	TotalCountries  int64   `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Status"}).Error("failed to read status")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		TotalCountries:  status.Total,
		LastRefreshedAt: status.LastRefreshedAt,
	})
}
