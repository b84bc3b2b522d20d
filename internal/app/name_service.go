package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

// NameService backs the names list used by the browser and mobile clients.
type NameService struct {
	names  ports.NameRepository
	logger *slog.Logger
}

// NewNameService creates a name service. Panics if names is nil.
func NewNameService(names ports.NameRepository, logger *slog.Logger) *NameService {
	if names == nil {
		panic("NameService: NameRepository is required")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &NameService{names: names, logger: logger}
}

// AddName appends a name and returns the full list.
func (s *NameService) AddName(ctx context.Context, name string) ([]string, error) {
	names, err := s.names.Add(ctx, name)
	if err != nil {
		return nil, err
	}

	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "name added", slog.Int("count", len(names)))

	return names, nil
}

// ListNames returns the names in insertion order.
func (s *NameService) ListNames(ctx context.Context) []string {
	return s.names.List(ctx)
}

// ClearNames empties the list.
func (s *NameService) ClearNames(ctx context.Context) {
	s.names.Clear(ctx)
	logging.FromContextOr(ctx, s.logger).InfoContext(ctx, "names cleared")
}
