// Package main is the entry point for the quote API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-api/internal/adapters/clients"
	"github.com/jsamuelsen/quote-api/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-api/internal/adapters/http"
	"github.com/jsamuelsen/quote-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-api/internal/adapters/memory"
	"github.com/jsamuelsen/quote-api/internal/app"
	"github.com/jsamuelsen/quote-api/internal/platform/config"
	"github.com/jsamuelsen/quote-api/internal/platform/idgen"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-api/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	startedAt := time.Now()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	if cfg.App.Environment != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Identifier generator, strategy settled once
	ids := idgen.New()
	logger.Info("id generator ready", slog.String("strategy", string(ids.Strategy())))

	// 6. Quote store, seeded from the built-in set and the optional seed file
	quoteStore, err := newQuoteStore(ctx, cfg.Store, ids, logger)
	if err != nil {
		return err
	}

	// 7. Health registry
	healthRegistry := ports.NewHealthRegistry(ports.DefaultCheckTimeout)

	if err := healthRegistry.Register(quoteStore); err != nil {
		return fmt.Errorf("registering quote store health check: %w", err)
	}

	// 8. Weather provider (ACL pattern). Without an API key the weather
	// routes report the provider unavailable.
	weatherClient, err := newWeatherClient(cfg, logger)
	if err != nil {
		return err
	}

	var weatherPort ports.WeatherClient
	if weatherClient != nil {
		weatherPort = weatherClient

		if err := healthRegistry.Register(weatherClient); err != nil {
			return fmt.Errorf("registering weather client health check: %w", err)
		}
	} else {
		logger.Warn("weather provider not configured; set OPENWEATHER_API_KEY to enable /api/weather")
	}

	// 9. Application services
	quoteMetrics, err := app.NewQuoteMetrics(prometheus.DefaultRegisterer, quoteStore)
	if err != nil {
		return fmt.Errorf("registering quote metrics: %w", err)
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: quoteStore,
		Logger:     logger,
		Metrics:    quoteMetrics,
	})
	userService := app.NewUserService(memory.NewUserDirectory(memory.SeedUsers()), logger)
	nameService := app.NewNameService(memory.NewNameList(), logger)
	weatherService := app.NewWeatherService(weatherPort, logger)

	// 10. Handlers
	routeHandlers := http.Handlers{
		Quotes:   handlers.NewQuoteHandler(quoteService),
		Users:    handlers.NewUserHandler(userService),
		Names:    handlers.NewNameHandler(nameService),
		Weather:  handlers.NewWeatherHandler(weatherService),
		Greeting: handlers.NewGreetingHandler(nil),
		Health: handlers.NewHealthHandler(handlers.HealthConfig{
			Registry:  healthRegistry,
			BuildInfo: handlers.NewBuildInfo(Version, Commit, BuildTime),
			StartedAt: startedAt,
		}),
	}

	// 11. HTTP server and router
	server := http.New(&cfg.Server, logger)

	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.Telemetry.ServiceName,
		HTTP:        cfg.HTTP,
		Handlers:    routeHandlers,
	})

	// 12. Bind and serve in the background
	serverErr, err := server.Start()
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// newQuoteStore builds the in-memory store. The seed file, when set, is
// imported on top of the built-in quotes one entry at a time so the listing
// keeps file order; entries that fail validation are logged and skipped.
func newQuoteStore(ctx context.Context, cfg config.StoreConfig, ids ports.IDGenerator, logger *slog.Logger) (*memory.QuoteStore, error) {
	var opts []memory.QuoteStoreOption
	if cfg.Seed {
		opts = append(opts, memory.WithQuotes(memory.SeedQuotes()...))
	}

	store := memory.NewQuoteStore(ids, opts...)

	if cfg.SeedFile == "" {
		return store, nil
	}

	f, err := os.Open(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	inputs, err := app.ParseQuoteFile(f)
	if err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", cfg.SeedFile, err)
	}

	result, err := app.NewImporter(app.ImporterConfig{
		Target:      store,
		Concurrency: 1,
		Logger:      logger,
	}).Import(ctx, inputs)
	if err != nil {
		return nil, fmt.Errorf("importing seed file: %w", err)
	}

	for _, failure := range result.Failed {
		logger.Warn("skipped seed quote",
			slog.Int("index", failure.Index),
			slog.Any("error", failure.Err),
		)
	}

	logger.Info("seed file imported",
		slog.String("path", cfg.SeedFile),
		slog.Int("created", len(result.Created)),
		slog.Int("failed", len(result.Failed)),
	)

	return store, nil
}

// newWeatherClient returns nil when no API key is configured.
func newWeatherClient(cfg *config.Config, logger *slog.Logger) (*acl.WeatherClient, error) {
	weather := cfg.Services.Weather
	if weather.APIKey == "" {
		return nil, nil //nolint:nilnil // absent provider is a valid configuration
	}

	httpClient, err := clients.New(clients.Config{
		BaseURL:     weather.BaseURL,
		ServiceName: weather.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating weather HTTP client: %w", err)
	}

	return acl.NewWeatherClient(acl.WeatherClientConfig{
		Client: httpClient,
		APIKey: weather.APIKey,
		Units:  weather.Units,
		Logger: logger,
	}), nil
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err, ok := <-serverErr:
		if !ok {
			return nil
		}

		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
