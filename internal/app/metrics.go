package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

const (
	opList   = "list"
	opGet    = "get"
	opRandom = "random"
	opCreate = "create"
	opDelete = "delete"
)

// Outcome label values.
const (
	outcomeOK              = "ok"
	outcomeNotFound        = "not_found"
	outcomeInvalid         = "invalid"
	outcomeEmptyCollection = "empty"
	outcomeError           = "error"
)

// QuoteMetrics exports quote store activity to Prometheus.
// A nil *QuoteMetrics is valid and records nothing.
type QuoteMetrics struct {
	operations *prometheus.CounterVec
	stored     prometheus.GaugeFunc
}

// NewQuoteMetrics creates the collectors and registers them with reg. The
// stored gauge reads repo.Len at scrape time.
func NewQuoteMetrics(reg prometheus.Registerer, repo ports.QuoteRepository) (*QuoteMetrics, error) {
	m := &QuoteMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quote_api",
			Name:      "quote_operations_total",
			Help:      "Quote store operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		stored: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "quote_api",
			Name:      "quotes_stored",
			Help:      "Number of quotes currently held in the store.",
		}, func() float64 {
			return float64(repo.Len(context.Background()))
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.stored} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *QuoteMetrics) observe(operation string, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeOK
	case domain.IsNotFound(err):
		return outcomeNotFound
	case domain.IsValidation(err):
		return outcomeInvalid
	case domain.IsEmptyCollection(err):
		return outcomeEmptyCollection
	default:
		return outcomeError
	}
}
