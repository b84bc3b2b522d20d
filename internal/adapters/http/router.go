package http

import (
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-api/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-api/internal/platform/config"
	"github.com/jsamuelsen/quote-api/internal/platform/telemetry"
)

const indexFile = "index.html"

// Handlers groups the route handlers. A nil handler leaves its routes
// unregistered.
type Handlers struct {
	Quotes   *handlers.QuoteHandler
	Users    *handlers.UserHandler
	Names    *handlers.NameHandler
	Weather  *handlers.WeatherHandler
	Greeting *handlers.GreetingHandler
	Health   *handlers.HealthHandler
}

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	Logger      *slog.Logger
	ServiceName string
	HTTP        config.HTTPConfig
	Handlers    Handlers

	// RateLimiter overrides the limiter built from HTTP.RateLimit.
	RateLimiter *middleware.RateLimiter
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and metrics
//  5. Logging (skips /-/)
//  6. CORS, when enabled
//  7. Rate limit, when enabled (skips /-/)
//  8. Timeout (skips /-/metrics)
//
// Route groups:
//   - /-/: operational endpoints
//   - /api: quotes, users, health and weather
//   - /: names, greetings, datetime and the static site
//
// Paths match exactly: a trailing slash is a different path and gets the
// ROUTE_NOT_FOUND envelope, not a redirect.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(logger))

	if cfg.HTTP.CORS.Enabled {
		engine.Use(middleware.CORS(cfg.HTTP.CORS.AllowedOrigins, cfg.HTTP.CORS.MaxAge))
	}

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.HTTP.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimit.RPS, cfg.HTTP.RateLimit.Burst)
	}

	if limiter != nil {
		engine.Use(limiter.Middleware())
	}

	engine.Use(middleware.Timeout(cfg.HTTP.RequestTimeout, "/-/metrics"))

	registerRoutes(engine, cfg.Handlers, cfg.HTTP.StaticDir)
}

func registerRoutes(engine *gin.Engine, h Handlers, staticDir string) {
	if h.Health != nil {
		h.Health.RegisterRoutes(engine.Group("/-"))
	}

	api := engine.Group("/api")

	if h.Health != nil {
		api.GET("/health", h.Health.APIHealth)
	}

	if h.Quotes != nil {
		h.Quotes.RegisterRoutes(api.Group("/quotes"))
	}

	if h.Users != nil {
		h.Users.RegisterRoutes(api.Group("/users"))
	}

	if h.Weather != nil {
		api.GET("/weather", h.Weather.Current)
	}

	if h.Names != nil {
		h.Names.RegisterRoutes(engine.Group("/names"))
	}

	if h.Greeting != nil {
		engine.GET("/datetime", h.Greeting.DateTime)
		engine.GET("/greet", h.Greeting.Greet)
		engine.GET("/greet/:name", h.Greeting.Greet)
	}

	engine.GET("/", rootHandler(staticDir, h.Greeting))
	engine.NoRoute(notFoundHandler(staticDir))
}

// rootHandler serves the static index when there is one, otherwise the
// plain-text greeting.
func rootHandler(staticDir string, greeting *handlers.GreetingHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if file, ok := staticFile(staticDir, indexFile); ok {
			c.File(file)
			return
		}

		if greeting != nil {
			greeting.Root(c)
			return
		}

		routeNotFound(c)
	}
}

// notFoundHandler serves files from staticDir for GET and HEAD and answers
// everything else with the ROUTE_NOT_FOUND envelope.
func notFoundHandler(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			if file, ok := staticFile(staticDir, c.Request.URL.Path); ok {
				c.File(file)
				return
			}
		}

		routeNotFound(c)
	}
}

func routeNotFound(c *gin.Context) {
	resp := dto.NewErrorResponse(dto.ErrorCodeRouteNotFound, "Route not found").WithTraceID(dto.TraceID(c))
	c.JSON(http.StatusNotFound, resp)
}

// staticFile resolves urlPath inside dir. Cleaning against "/" keeps the
// result inside dir; directories are not served.
func staticFile(dir, urlPath string) (string, bool) {
	if dir == "" {
		return "", false
	}

	file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))

	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}

	return file, true
}
