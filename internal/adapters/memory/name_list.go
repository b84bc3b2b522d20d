package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jsamuelsen/quote-api/internal/domain"
)

// NameList is the in-memory backing for the names resource.
type NameList struct {
	mu    sync.RWMutex
	names []string
}

// NewNameList creates an empty list.
func NewNameList() *NameList {
	return &NameList{names: make([]string, 0)}
}

// Add appends a trimmed, non-empty name and returns the updated list.
func (l *NameList) Add(_ context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("is required", "name")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.names = append(l.names, name)

	return slices.Clone(l.names), nil
}

// List returns the names in insertion order.
func (l *NameList) List(_ context.Context) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return slices.Clone(l.names)
}

// Clear removes every name.
func (l *NameList) Clear(_ context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.names = l.names[:0]
}
