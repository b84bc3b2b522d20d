// Package memory provides process-local implementations of the repository
// ports. Nothing here survives a restart.
package memory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

const (
	quoteEntity = "quote"

	// checkPollInterval spaces read-lock attempts in Check.
	checkPollInterval = 5 * time.Millisecond
)

// QuoteStore is an ordered, mutex-guarded sequence of quotes.
// Writers take the exclusive lock; readers share it and receive copies.
type QuoteStore struct {
	mu     sync.RWMutex
	quotes []domain.Quote
	ids    ports.IDGenerator
	pick   func(n int) int
}

// QuoteStoreOption configures a QuoteStore.
type QuoteStoreOption func(*QuoteStore)

// WithPicker replaces the uniform random index function used by Random.
// pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) QuoteStoreOption {
	return func(s *QuoteStore) {
		s.pick = pick
	}
}

// WithQuotes pre-loads the store. Seed records keep their ids.
func WithQuotes(quotes ...domain.Quote) QuoteStoreOption {
	return func(s *QuoteStore) {
		s.quotes = append(s.quotes, quotes...)
	}
}

// NewQuoteStore creates a store that assigns ids from ids.
// Panics if ids is nil.
func NewQuoteStore(ids ports.IDGenerator, opts ...QuoteStoreOption) *QuoteStore {
	if ids == nil {
		panic("QuoteStore: IDGenerator is required")
	}

	s := &QuoteStore{
		quotes: make([]domain.Quote, 0),
		ids:    ids,
		pick:   rand.IntN,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// List returns a snapshot of every quote in insertion order.
func (s *QuoteStore) List(_ context.Context) []domain.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.quotes)
}

// Get returns the quote with the given id.
func (s *QuoteStore) Get(_ context.Context, id string) (domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Quote{}, domain.NewNotFoundError(quoteEntity, id)
	}

	return s.quotes[idx], nil
}

// Random returns a uniformly chosen quote.
func (s *QuoteStore) Random(_ context.Context) (domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.quotes) == 0 {
		return domain.Quote{}, domain.NewEmptyCollectionError("quotes")
	}

	return s.quotes[s.pick(len(s.quotes))], nil
}

// Create validates text and author, assigns a fresh id and appends the quote.
// Validation runs before the lock is taken so rejected input never blocks readers.
func (s *QuoteStore) Create(_ context.Context, text, author string) (domain.Quote, error) {
	quote, err := domain.NewQuote("", text, author)
	if err != nil {
		return domain.Quote{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quote.ID = s.ids.NewID()
	s.quotes = append(s.quotes, quote)

	return quote, nil
}

// Delete removes the quote with the given id, keeping the others in order.
func (s *QuoteStore) Delete(_ context.Context, id string) (domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Quote{}, domain.NewNotFoundError(quoteEntity, id)
	}

	removed := s.quotes[idx]
	s.quotes = slices.Delete(s.quotes, idx, idx+1)

	return removed, nil
}

// Len returns the number of stored quotes.
func (s *QuoteStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.quotes)
}

// Name returns the health check name for the store.
// Implements ports.HealthChecker.
func (s *QuoteStore) Name() string {
	return "quote-store"
}

// Check reports whether a read lock can be taken before ctx ends, so a
// writer stuck holding the store turns the check unhealthy.
// Implements ports.HealthChecker.
func (s *QuoteStore) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ticker := time.NewTicker(checkPollInterval)
	defer ticker.Stop()

	for {
		if s.mu.TryRLock() {
			s.mu.RUnlock()
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("quote store lock unavailable: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// indexOf must be called with the lock held.
func (s *QuoteStore) indexOf(id string) int {
	return slices.IndexFunc(s.quotes, func(q domain.Quote) bool {
		return q.ID == id
	})
}
