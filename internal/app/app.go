package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"dataniaga/internal/analytics"
	"dataniaga/internal/config"
	"dataniaga/internal/errors"
	"dataniaga/internal/infrastructure"
	customMiddleware "dataniaga/internal/middleware"
	"dataniaga/internal/services"
	handlers "dataniaga/internal/transport/http"
)

// Version is the service version, overridable at build time with
// -ldflags "-X dataniaga/internal/app.Version=...".
var Version = "1.0.0"

// Application is the main application container.
type Application struct {
	Config            *config.Config
	Router            *chi.Mux
	Server            *http.Server
	Logger            *slog.Logger
	OTelProviders     *infrastructure.OTelProviders
	ValidationService *services.ValidationService
	HealthService     *services.HealthService
	AnalyticsClient   *analytics.Client
}

// NewApplication loads configuration and builds the full service graph.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()
	return app, nil
}

func (a *Application) initializeServices() error {
	var metrics *infrastructure.ValidationMetrics
	if a.OTelProviders.Meter != nil {
		var err error
		metrics, err = infrastructure.NewValidationMetrics(a.OTelProviders.Meter)
		if err != nil {
			return fmt.Errorf("register validation metrics: %w", err)
		}
	}

	a.ValidationService = services.NewValidationService(a.Config.Validation, metrics, a.Logger)

	if a.Config.Analytics.Enabled {
		a.AnalyticsClient = analytics.NewClient(
			a.Config.Analytics.BaseURL,
			a.Config.Analytics.Timeout,
			a.Logger)
	}

	var pinger services.AnalyticsPinger
	if a.AnalyticsClient != nil {
		pinger = a.AnalyticsClient
	}
	a.HealthService = services.NewHealthService(Version, pinger, a.Logger)
	return nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))

	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
		}))
	}

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger, false)
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		var uploader handlers.Uploader
		if a.AnalyticsClient != nil {
			uploader = a.AnalyticsClient
		}
		uploadHandler := handlers.NewUploadHandler(a.ValidationService, uploader, errorHandler, a.Logger)
		r.Post("/upload-data", uploadHandler.UploadData)
		r.Post("/validate", uploadHandler.ValidateOnly)

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)
	})

	// Prometheus scrape endpoint, outside the API middleware group.
	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run starts the server and blocks until the context is cancelled or the
// server fails.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		a.Logger.Info("shutdown signal received")
		return a.Stop()
	})

	return g.Wait()
}

// Stop gracefully shuts down the server and telemetry providers.
func (a *Application) Stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()
	a.Logger.Info("application shutdown complete")
	return nil
}
