package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"yukyu/internal/domain/compliance"
	"yukyu/internal/domain/leave"
	"yukyu/internal/platform/ai"
	"yukyu/internal/platform/config"
	"yukyu/internal/platform/db"
	"yukyu/internal/platform/metrics"
	analysishandler "yukyu/internal/transport/http/handlers/analysis"
	employeehandler "yukyu/internal/transport/http/handlers/employees"
	recordhandler "yukyu/internal/transport/http/handlers/records"
	systemhandler "yukyu/internal/transport/http/handlers/system"
	"yukyu/internal/transport/http/middleware"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config  config.Config
	DB      *db.DB
	Router  http.Handler
	Metrics *metrics.Collector
}

// New opens the store and builds the router. The Gemini client is created
// only when an API key is configured.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var collector *metrics.Collector
	if cfg.MetricsEnabled {
		collector = metrics.New()
	}

	analyzer := &compliance.Analyzer{Recorder: collector}
	if cfg.AIConfigured() {
		gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		analyzer.Generator = gemini
		slog.Info("compliance analysis enabled", "model", gemini.Model())
	} else {
		slog.Warn("GEMINI_API_KEY not set; compliance analysis disabled")
	}

	app := &App{Config: cfg, DB: database, Metrics: collector}
	app.Router = app.routes(leave.NewStore(database), analyzer)
	return app, nil
}

func (a *App) routes(store leave.StoreAPI, analyzer *compliance.Analyzer) http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Route("/api", func(r chi.Router) {
		systemhandler.NewHandler(a.DB, a.Metrics).RegisterRoutes(r)
		employeehandler.NewHandler(store, a.Metrics, cfg.LedgerFontPath).RegisterRoutes(r)
		recordhandler.NewHandler(store, a.Metrics).RegisterRoutes(r)

		var limit func(http.Handler) http.Handler
		if cfg.AnalyzeRatePerMin > 0 {
			keyFn := middleware.ClientIP
			if cfg.TrustProxy {
				keyFn = middleware.ForwardedClientIP
			}
			limit = middleware.RateLimit(cfg.AnalyzeRatePerMin, time.Minute, middleware.WithKeyFunc(keyFn))
		}
		analysishandler.NewHandler(analyzer, limit).RegisterRoutes(r)
	})
	return router
}

func (a *App) Close() error {
	return a.DB.Close()
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("yukyu server listening", "addr", srv.Addr, "db", a.Config.DBPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
