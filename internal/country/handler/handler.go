package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"countrypulse/internal/adapters"
	"countrypulse/internal/country"
	"countrypulse/internal/domain"
)

type CountryService interface {
	List(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error)
	Get(ctx context.Context, name string) (domain.Country, error)
	Delete(ctx context.Context, name string) error
	Status(ctx context.Context) (country.Status, error)
}

type Refresher interface {
	Run(ctx context.Context) (domain.RefreshResult, error)
}

type Handler struct {
	service   CountryService
	refresher Refresher
	snapshots adapters.SnapshotStore
}

func NewCountryHandler(service CountryService, refresher Refresher, snapshots adapters.SnapshotStore) *Handler {
	return &Handler{service: service, refresher: refresher, snapshots: snapshots}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeErrorDetails(w, statusCode, errorMsg, "")
}

func writeErrorDetails(w http.ResponseWriter, statusCode int, errorMsg, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:   errorMsg,
		Details: details,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
