package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"factcheck-web/internal/config"
	hhttp "factcheck-web/internal/handler/http"
	"factcheck-web/internal/handler/http/api"
	"factcheck-web/internal/handler/http/middleware"
	"factcheck-web/internal/handler/http/requestid"
	"factcheck-web/internal/handler/http/web"
	"factcheck-web/internal/infra/factcheckapi"
	"factcheck-web/internal/infra/fetcher"
	"factcheck-web/internal/infra/session"
	"factcheck-web/internal/markup"
	"factcheck-web/internal/observability/logging"
	"factcheck-web/internal/observability/tracing"
	fcUC "factcheck-web/internal/usecase/factcheck"
	"factcheck-web/pkg/security/csp"

	_ "factcheck-web/docs" // swagger docs
)

// @title           Fact Check Web API
// @version         1.0
// @description     JSON API of the bilingual fact-check front end: claim verification,
// @description     article and post composition, article review and text rendering.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)
	version := getVersion()

	shutdownTracing := tracing.Setup("factcheck-web", version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer components.Close()

	runServer(logger, cfg, components, version)
}

// initLogger installs the JSON logger at the configured level as the default.
func initLogger(level string) *slog.Logger {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(level))
	slog.SetDefault(logger)
	return logger
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds what the server needs at runtime and on shutdown.
type ServerComponents struct {
	Handler   http.Handler
	Scheduler *cron.Cron

	closers []func() error
}

// Close releases the session backend.
func (c *ServerComponents) Close() {
	for _, fn := range c.closers {
		if err := fn(); err != nil {
			slog.Error("failed to close component", slog.Any("error", err))
		}
	}
}

// setupServer wires the session store, upstream clients, use case and routes.
func setupServer(logger *slog.Logger, cfg *config.Config, version string) (*ServerComponents, error) {
	components := &ServerComponents{Scheduler: cron.New()}

	store, err := initSessionStore(logger, cfg.Session, components)
	if err != nil {
		return nil, err
	}

	client := factcheckapi.New(factcheckapi.Config{
		BaseURL:       cfg.FactCheck.BaseURL,
		Timeout:       cfg.FactCheck.Timeout,
		RatePerSecond: cfg.FactCheck.RatePerSecond,
		Burst:         cfg.FactCheck.Burst,
	})

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Enabled = cfg.Fetcher.Enabled
	fetchCfg.Timeout = cfg.Fetcher.Timeout
	fetchCfg.MaxBodySize = cfg.Fetcher.MaxBodySize
	fetchCfg.MaxRedirects = cfg.Fetcher.MaxRedirects
	fetchCfg.DenyPrivateIPs = cfg.Fetcher.DenyPrivateIPs
	if err := fetchCfg.Validate(); err != nil {
		return nil, err
	}
	articleFetcher := fetcher.NewReadabilityFetcher(fetchCfg)

	svc := &fcUC.Service{API: client, Fetcher: articleFetcher}

	webHandler, err := web.New(web.Config{
		Service:      svc,
		Sessions:     store,
		Logger:       logger,
		CookieSecure: cfg.Session.CookieSecure,
		SessionTTL:   cfg.Session.TTL,
	})
	if err != nil {
		return nil, err
	}

	var limiter *hhttp.RateLimiter
	if cfg.RateLimit.Enabled {
		trusted, err := hhttp.ParseTrustedProxies(strings.Join(cfg.RateLimit.TrustedProxies, ","))
		if err != nil {
			return nil, err
		}
		limiter = hhttp.NewRateLimiter(hhttp.RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
			TrustedProxies:    trusted,
		})
		hhttp.ScheduleRateLimitCleanup(components.Scheduler, limiter, cfg.RateLimit.CleanupInterval, "ip")
		logger.Info("rate limiting initialized",
			slog.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Int("trusted_proxies_count", len(trusted)))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	mux := http.NewServeMux()

	// Operational endpoints are never rate limited.
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Version:       version,
		Sessions:      store,
		Circuits:      circuits(store, client, articleFetcher),
		RateLimiter:   limiter,
		CSPEnabled:    cfg.CSP.Enabled,
		CSPReportOnly: cfg.CSP.ReportOnly,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Sessions: store})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	if cfg.Server.SwaggerEnabled {
		mux.Handle("GET /swagger/", httpSwagger.WrapHandler)
	}

	app := http.NewServeMux()
	webHandler.Register(app)
	api.Register(app, &api.Handler{Svc: svc, Sessions: store, Logger: logger})

	var appHandler http.Handler = app
	if limiter != nil {
		appHandler = limiter.Limit(appHandler)
	}
	mux.Handle("/", appHandler)

	components.Handler = applyMiddleware(logger, cfg, mux)
	return components, nil
}

// initSessionStore builds the configured session backend.
func initSessionStore(logger *slog.Logger, cfg config.SessionConfig, components *ServerComponents) (session.Store, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client, err := session.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		components.closers = append(components.closers, client.Close)
		logger.Info("session store: redis", slog.String("key_prefix", cfg.KeyPrefix))
		return session.NewRedisStore(client, cfg.KeyPrefix, cfg.TTL), nil
	default:
		store := session.NewMemoryStore(cfg.TTL)
		if _, err := store.Schedule(components.Scheduler, cfg.SweepSchedule); err != nil {
			return nil, err
		}
		logger.Info("session store: memory",
			slog.Duration("ttl", cfg.TTL),
			slog.String("sweep_schedule", cfg.SweepSchedule))
		return store, nil
	}
}

func circuits(store session.Store, client *factcheckapi.Client, f *fetcher.ReadabilityFetcher) []hhttp.CircuitReporter {
	out := []hhttp.CircuitReporter{client.Breaker(), f.Breaker()}
	if rs, ok := store.(*session.RedisStore); ok {
		out = append(out, rs.Breaker())
	}
	return out
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Tracing → Recovery → Logging → Input limits → CSP → Metrics
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	cspMiddleware := func(next http.Handler) http.Handler { return next }
	if cfg.CSP.Enabled {
		cspMW := middleware.NewCSPMiddleware(middleware.CSPMiddlewareConfig{
			Enabled:       true,
			DefaultPolicy: csp.WebAppPolicy(markup.FaviconOrigin),
			PathPolicies: map[string]*csp.CSPBuilder{
				"/swagger/": csp.SwaggerUIPolicy(),
				"/api/":     csp.StrictPolicy(),
			},
			ReportOnly: cfg.CSP.ReportOnly,
		})
		cspMiddleware = cspMW.Middleware()
		logger.Info("CSP enabled", slog.Bool("report_only", cfg.CSP.ReportOnly))
	} else {
		logger.Warn("CSP is disabled")
	}

	// Apply in reverse order (innermost to outermost)
	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = cspMiddleware(chain)
	chain = hhttp.InputValidation(cfg.Server.MaxBodyBytes)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer starts the HTTP server and the scheduler, and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	components.Scheduler.Start()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("upstream", cfg.FactCheck.BaseURL),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Stop scheduled jobs and wait for a running one to finish
	<-components.Scheduler.Stop().Done()
	logger.Debug("scheduler stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	logger.Info("server stopped")
}
