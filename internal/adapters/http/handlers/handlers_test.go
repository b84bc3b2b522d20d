package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-api/internal/adapters/memory"
	"github.com/jsamuelsen/quote-api/internal/app"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.DiscardHandler)

type seqIDs struct{ n atomic.Int64 }

func (s *seqIDs) NewID() string {
	return fmt.Sprintf("id-%d", s.n.Add(1))
}

func newQuoteService(t *testing.T, seeded bool) *app.QuoteService {
	t.Helper()

	var opts []memory.QuoteStoreOption
	if seeded {
		opts = append(opts, memory.WithQuotes(memory.SeedQuotes()...), memory.WithPicker(func(int) int { return 0 }))
	}

	return app.NewQuoteService(app.QuoteServiceConfig{
		Repository: memory.NewQuoteStore(&seqIDs{}, opts...),
		Logger:     discard,
	})
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}
