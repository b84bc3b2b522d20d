package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/jsamuelsen/quote-api/internal/adapters/http"
	"github.com/jsamuelsen/quote-api/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-api/internal/adapters/memory"
	"github.com/jsamuelsen/quote-api/internal/app"
	"github.com/jsamuelsen/quote-api/internal/platform/config"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type seqIDs struct{ n atomic.Int64 }

func (s *seqIDs) NewID() string { return fmt.Sprintf("id-%d", s.n.Add(1)) }

// newServer runs a seeded quote API in-process.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	store := memory.NewQuoteStore(&seqIDs{}, memory.WithQuotes(memory.SeedQuotes()...), memory.WithPicker(func(int) int { return 0 }))

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger: logger,
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Handlers: httpadapter.Handlers{
			Quotes: handlers.NewQuoteHandler(app.NewQuoteService(app.QuoteServiceConfig{
				Repository: store,
				Logger:     logger,
			})),
			Health: handlers.NewHealthHandler(handlers.HealthConfig{
				Registry:  ports.NewHealthRegistry(time.Second),
				StartedAt: time.Now().Add(-90 * time.Second),
			}),
		},
	})

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	return srv
}

// run executes quotectl against srv and returns stdout.
func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	argv := append([]string{"quotectl", "--server", srv.URL, "--log-level", "error"}, args...)
	err := newApp(&out, &errOut).Run(context.Background(), argv)

	return out.String(), err
}

func TestListAndGet(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, srv, "list")
	require.NoError(t, err)

	var quotes []quoteView
	require.NoError(t, json.Unmarshal([]byte(out), &quotes))
	require.Len(t, quotes, 3)
	assert.Equal(t, "q1", quotes[0].ID)

	out, err = run(t, srv, "get", "q2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"q2","text":"Simplicity is the soul of efficiency.","author":"Austin Freeman"}`, out)

	_, err = run(t, srv, "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting quote missing")

	_, err = run(t, srv, "get")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage:")
}

func TestAddRandomDelete(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, srv, "add", "--text", "X", "--author", "Y")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"id-1","text":"X","author":"Y"}`, out)

	out, err = run(t, srv, "random")
	require.NoError(t, err)
	assert.Contains(t, out, `"id": "q1"`)

	out, err = run(t, srv, "delete", "q2")
	require.NoError(t, err)
	assert.Contains(t, out, `"removed"`)
	assert.Contains(t, out, `"id": "q2"`)

	_, err = run(t, srv, "add", "--text", "   ", "--author", "Y")
	require.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newServer(t)

	out, err := run(t, srv, "health")
	require.NoError(t, err)

	var h healthView
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, "ok", h.Status)
	assert.NotEmpty(t, h.Uptime)
	assert.NotEmpty(t, h.Time)
}

func TestImport(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`quotes:
  - text: First
    author: A
  - text: Second
    author: B
`), 0o600))

	out, err := run(t, srv, "import", "--concurrency", "2", good)
	require.NoError(t, err)

	var report importView
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Created, 2)
	assert.Empty(t, report.Failed)

	listed, err := run(t, srv, "list")
	require.NoError(t, err)
	assert.Contains(t, listed, "Second")

	partial := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(partial, []byte(`quotes:
  - text: Third
    author: C
  - text: ""
    author: D
`), 0o600))

	out, err = run(t, srv, "import", partial)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 quotes failed")

	report = importView{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report.Created, 1)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 1, report.Failed[0].Index)

	_, err = run(t, srv, "import", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestServerUnreachable(t *testing.T) {
	srv := newServer(t)
	srv.Close()

	_, err := run(t, srv, "--timeout", "200ms", "list")
	require.Error(t, err)
}
