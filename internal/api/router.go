package api

import (
	_ "countrypulse/docs"
	"countrypulse/internal/country/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(countryHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI and metrics
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/api/v1/countries/refresh", countryHandler.Refresh)
	router.Get("/api/v1/countries/image", countryHandler.Image)
	router.Get("/api/v1/countries", countryHandler.List)
	router.Get("/api/v1/countries/{name}", countryHandler.GetOne)
	router.Delete("/api/v1/countries/{name}", countryHandler.Delete)
	router.Get("/api/v1/status", countryHandler.Status)
	return router
}
