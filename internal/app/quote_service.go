// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

// QuoteService orchestrates quote use cases on top of a QuoteRepository.
// The repository enforces the invariants; the service adds logging and metrics.
type QuoteService struct {
	repo    ports.QuoteRepository
	logger  *slog.Logger
	metrics *QuoteMetrics
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Logger     *slog.Logger

	// Metrics is optional.
	Metrics *QuoteMetrics
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Repository is nil. Defaults Logger to slog.Default().
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("QuoteService: Repository is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		repo:    cfg.Repository,
		logger:  logger.With(slog.String("component", "app.QuoteService")),
		metrics: cfg.Metrics,
	}
}

// ListQuotes returns every quote in insertion order.
func (s *QuoteService) ListQuotes(ctx context.Context) []domain.Quote {
	quotes := s.repo.List(ctx)

	s.log(ctx).DebugContext(ctx, "listed quotes", slog.Int("count", len(quotes)))
	s.metrics.observe(opList, nil)

	return quotes
}

// GetQuote retrieves a quote by its identifier.
func (s *QuoteService) GetQuote(ctx context.Context, id string) (domain.Quote, error) {
	quote, err := s.repo.Get(ctx, id)
	s.metrics.observe(opGet, err)

	if err != nil {
		s.log(ctx).InfoContext(ctx, "quote lookup failed",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return domain.Quote{}, err
	}

	return quote, nil
}

// RandomQuote picks a quote at random.
func (s *QuoteService) RandomQuote(ctx context.Context) (domain.Quote, error) {
	quote, err := s.repo.Random(ctx)
	s.metrics.observe(opRandom, err)

	if err != nil {
		s.log(ctx).InfoContext(ctx, "random quote unavailable", slog.Any("error", err))
		return domain.Quote{}, err
	}

	return quote, nil
}

// CreateQuote stores a new quote.
func (s *QuoteService) CreateQuote(ctx context.Context, text, author string) (domain.Quote, error) {
	quote, err := s.repo.Create(ctx, text, author)
	s.metrics.observe(opCreate, err)

	if err != nil {
		s.log(ctx).InfoContext(ctx, "quote rejected", slog.Any("error", err))
		return domain.Quote{}, err
	}

	s.log(ctx).InfoContext(ctx, "quote created",
		slog.String("quote_id", quote.ID),
		slog.String("author", quote.Author),
	)

	return quote, nil
}

// DeleteQuote removes a quote and returns it.
func (s *QuoteService) DeleteQuote(ctx context.Context, id string) (domain.Quote, error) {
	quote, err := s.repo.Delete(ctx, id)
	s.metrics.observe(opDelete, err)

	if err != nil {
		s.log(ctx).InfoContext(ctx, "quote delete failed",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return domain.Quote{}, err
	}

	s.log(ctx).InfoContext(ctx, "quote deleted", slog.String("quote_id", id))

	return quote, nil
}

// log prefers the request-scoped logger so entries carry request ids.
func (s *QuoteService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}
