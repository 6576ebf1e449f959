package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"countrypulse/internal/adapters/cache"
	"countrypulse/internal/adapters/httpclient"
	"countrypulse/internal/adapters/postgres"
	"countrypulse/internal/adapters/snapshot"
	"countrypulse/internal/api"
	"countrypulse/internal/config"
	"countrypulse/internal/country"
	"countrypulse/internal/country/handler"
	"countrypulse/internal/platform/db"
	httpserver "countrypulse/internal/platform/http"
	"countrypulse/internal/refresh"
	"countrypulse/internal/render"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Base HTTP client (configurable timeout, 15s by default)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 15 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// External clients
	countriesClient := httpclient.NewCountriesClient(baseHTTPClient, appCfg.Sources.CountriesURL)
	ratesClient := httpclient.NewExchangeRateClient(baseHTTPClient, appCfg.Sources.ExchangeURL)

	// Repositories and stores
	countryRepo := postgres.NewCountryRepository(pool)
	snapshotStore := snapshot.NewFileStore(appCfg.Snapshot.Dir)

	countryCache, err := cache.NewCountryCache(appCfg.Cache.MaxItems)
	if err != nil {
		logrus.WithError(err).Error("Failed to create country cache")
		return err
	}
	defer countryCache.Close()

	// Refresh pipeline
	publisher := refresh.NewPublisher(countryRepo, render.NewPNGRenderer(), snapshotStore)
	orchestrator := refresh.NewOrchestrator(
		countriesClient,
		ratesClient,
		countryRepo,
		countryCache,
		publisher,
		refresh.NewMultiplierSource(),
	)

	// Optional periodic refresh
	if appCfg.Scheduler.Enabled {
		scheduler := refresh.NewScheduler(orchestrator, time.Duration(appCfg.Scheduler.IntervalSeconds)*time.Second)
		// Ensure scheduler stops before DB pool closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Services, handlers, router
	countryService := country.NewService(countryRepo, countryCache)
	countryHandler := handler.NewCountryHandler(countryService, orchestrator, snapshotStore)
	router := api.NewRouter(countryHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
