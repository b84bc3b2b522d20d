package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
)

// DefaultImportConcurrency is used when ImporterConfig.Concurrency is not positive.
const DefaultImportConcurrency = 4

// QuoteCreator is the single operation the importer needs. Both the
// in-memory store and the remote API client satisfy it.
type QuoteCreator interface {
	Create(ctx context.Context, text, author string) (domain.Quote, error)
}

// QuoteInput is one entry of an import file.
type QuoteInput struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

// quoteFile is the on-disk import format:
//
//	quotes:
//	  - text: Simplicity is the soul of efficiency.
//	    author: Austin Freeman
type quoteFile struct {
	Quotes []QuoteInput `yaml:"quotes"`
}

// ParseQuoteFile decodes a YAML import file.
func ParseQuoteFile(r io.Reader) ([]QuoteInput, error) {
	var file quoteFile

	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("decoding quote file: %w", err)
	}

	return file.Quotes, nil
}

// ImportFailure records why one input was not created.
type ImportFailure struct {
	Index int
	Input QuoteInput
	Err   error
}

// ImportResult summarizes an import. Created keeps input order.
type ImportResult struct {
	Created []domain.Quote
	Failed  []ImportFailure
}

// ImporterConfig configures an Importer.
type ImporterConfig struct {
	Target QuoteCreator
	// Concurrency bounds in-flight creates. Only 1 keeps store order equal
	// to input order.
	Concurrency int
	Logger      *slog.Logger
}

// Importer creates many quotes with bounded concurrency.
// A failing entry is recorded and does not stop the others.
type Importer struct {
	target      QuoteCreator
	concurrency int
	logger      *slog.Logger
}

// NewImporter creates an importer. Panics if Target is nil.
func NewImporter(cfg ImporterConfig) *Importer {
	if cfg.Target == nil {
		panic("Importer: Target is required")
	}

	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultImportConcurrency
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Importer{
		target:      cfg.Target,
		concurrency: cfg.Concurrency,
		logger:      logger,
	}
}

// Import creates every input. It returns an error only when ctx ends
// before all inputs were attempted.
func (im *Importer) Import(ctx context.Context, inputs []QuoteInput) (*ImportResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(im.concurrency)

	var (
		mu      sync.Mutex
		created = make([]*domain.Quote, len(inputs))
		failed  []ImportFailure
	)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			quote, err := im.target.Create(gctx, in.Text, in.Author)
			if err != nil {
				mu.Lock()
				failed = append(failed, ImportFailure{Index: i, Input: in, Err: err})
				mu.Unlock()

				return nil
			}

			created[i] = &quote

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("importing quotes: %w", err)
	}

	result := &ImportResult{Failed: failed}
	for _, q := range created {
		if q != nil {
			result.Created = append(result.Created, *q)
		}
	}

	sortFailures(result.Failed)

	logging.FromContextOr(ctx, im.logger).InfoContext(ctx, "quote import finished",
		slog.Int("created", len(result.Created)),
		slog.Int("failed", len(result.Failed)),
	)

	return result, nil
}

func sortFailures(failures []ImportFailure) {
	slices.SortFunc(failures, func(a, b ImportFailure) int {
		return a.Index - b.Index
	})
}
