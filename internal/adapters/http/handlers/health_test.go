package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func healthRouter(t *testing.T, checkers ...ports.HealthChecker) (*gin.Engine, *prometheus.Registry) {
	t.Helper()

	registry := ports.NewHealthRegistry(time.Second)
	for _, c := range checkers {
		require.NoError(t, registry.Register(c))
	}

	started := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	reg := prometheus.NewRegistry()

	h := NewHealthHandler(HealthConfig{
		Registry:  registry,
		BuildInfo: BuildInfo{Version: "1.2.3", Commit: "abc123", BuildTime: "now", GoVersion: "go1.25"},
		Gatherer:  reg,
		StartedAt: started,
		Now:       func() time.Time { return started.Add(90*time.Second + 500*time.Millisecond) },
	})

	r := gin.New()
	r.GET("/api/health", h.APIHealth)
	h.RegisterRoutes(r.Group("/-"))

	return r, reg
}

func TestHealthHandler_APIHealth(t *testing.T) {
	r, _ := healthRouter(t, stubChecker{name: "broken", err: errors.New("down")})

	w := do(r, http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, w.Code, "api health ignores dependency checks")
	body := decode[dto.APIHealthResponse](t, w)
	assert.Equal(t, "ok", body.Status)
	assert.InDelta(t, 90.5, body.Uptime, 0.001)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 1, 30, 500_000_000, time.UTC).UnixMilli(), body.Timestamp)
}

func TestHealthHandler_Liveness(t *testing.T) {
	r, _ := healthRouter(t)

	w := do(r, http.MethodGet, "/-/live", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []ports.HealthChecker
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no checks",
			wantStatus: http.StatusOK,
			wantBody:   `"status":"healthy"`,
		},
		{
			name:       "all healthy",
			checkers:   []ports.HealthChecker{stubChecker{name: "quote-store"}},
			wantStatus: http.StatusOK,
			wantBody:   `"quote-store":{"status":"healthy"`,
		},
		{
			name: "one unhealthy",
			checkers: []ports.HealthChecker{
				stubChecker{name: "quote-store"},
				stubChecker{name: "weather-service", err: errors.New("circuit open")},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `"message":"circuit open"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := healthRouter(t, tt.checkers...)

			w := do(r, http.MethodGet, "/-/ready", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHealthHandler_Build(t *testing.T) {
	r, _ := healthRouter(t)

	w := do(r, http.MethodGet, "/-/build", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc123","buildTime":"now","goVersion":"go1.25"}`, w.Body.String())
}

func TestHealthHandler_Metrics(t *testing.T) {
	r, reg := healthRouter(t)

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "quote_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	w := do(r, http.MethodGet, "/-/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quote_test_total 1")
}

func TestNewBuildInfo(t *testing.T) {
	info := NewBuildInfo("v1", "sha", "today")

	assert.Equal(t, "v1", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}
