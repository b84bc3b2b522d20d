// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

// BuildInfo contains build-time information about the service.
// These values are typically injected at build time using ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo creates a BuildInfo with the Go version automatically set.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthConfig configures a HealthHandler.
type HealthConfig struct {
	Registry  ports.HealthRegistry
	BuildInfo BuildInfo

	// Gatherer backs /-/metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// StartedAt is the process start used for uptime. Defaults to now.
	StartedAt time.Time

	// Now defaults to time.Now.
	Now func() time.Time
}

// HealthHandler serves /api/health and the operational /-/ endpoints.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	gatherer  prometheus.Gatherer
	startedAt time.Time
	now       func() time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(cfg HealthConfig) *HealthHandler {
	h := &HealthHandler{
		registry:  cfg.Registry,
		buildInfo: cfg.BuildInfo,
		gatherer:  cfg.Gatherer,
		startedAt: cfg.StartedAt,
		now:       cfg.Now,
	}

	if h.now == nil {
		h.now = time.Now
	}

	if h.startedAt.IsZero() {
		h.startedAt = h.now()
	}

	if h.gatherer == nil {
		h.gatherer = prometheus.DefaultGatherer
	}

	return h
}

// APIHealth handles GET /api/health. It never touches the store and never
// fails: uptime is in seconds and timestamp in Unix milliseconds.
func (h *HealthHandler) APIHealth(c *gin.Context) {
	now := h.now()

	c.JSON(http.StatusOK, dto.APIHealthResponse{
		Status:    "ok",
		Uptime:    now.Sub(h.startedAt).Seconds(),
		Timestamp: now.UnixMilli(),
	})
}

type statusResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Liveness handles GET /-/live. It checks nothing beyond the process
// answering; dependencies belong to readiness.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, statusResponse{Status: "ok"})
}

// Readiness handles GET /-/ready: 200 unless a registered check is
// unhealthy, in which case 503.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, statusResponse{Status: string(result.Status), Checks: result.Checks})
}

// Build handles GET /-/build.
func (h *HealthHandler) Build(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// RegisterRoutes mounts the operational routes on rg, normally the /-/ group.
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.Build)
	rg.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
}
