// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrValidation, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-api/internal/domain"
)

// IDGenerator issues identifiers for new records.
// Implementations must not fail and must not repeat an identifier.
type IDGenerator interface {
	NewID() string
}

// QuoteRepository is the ordered store of quotes.
// Mutations are atomic with respect to readers.
type QuoteRepository interface {
	// List returns every quote in insertion order.
	List(ctx context.Context) []domain.Quote

	// Get returns the quote with the given id.
	// Returns *domain.NotFoundError if it does not exist.
	Get(ctx context.Context, id string) (domain.Quote, error)

	// Random returns a uniformly chosen quote.
	// Returns *domain.EmptyCollectionError if the store is empty.
	Random(ctx context.Context) (domain.Quote, error)

	// Create validates the input, assigns an id and appends the quote.
	// Returns *domain.ValidationError naming every blank field.
	Create(ctx context.Context, text, author string) (domain.Quote, error)

	// Delete removes the quote with the given id and returns it.
	// Returns *domain.NotFoundError if it does not exist.
	Delete(ctx context.Context, id string) (domain.Quote, error)

	// Len returns the number of stored quotes.
	Len(ctx context.Context) int
}

// UserDirectory is a read-only lookup of users.
type UserDirectory interface {
	// List returns every user in seed order.
	List(ctx context.Context) []domain.User

	// Get returns the user with the given id.
	// Returns *domain.NotFoundError if it does not exist.
	Get(ctx context.Context, id int) (domain.User, error)
}

// NameRepository is the append-only list behind the names resource.
type NameRepository interface {
	// Add appends a name and returns the list after the append.
	Add(ctx context.Context, name string) ([]string, error)

	// List returns the names in insertion order.
	List(ctx context.Context) []string

	// Clear removes every name.
	Clear(ctx context.Context)
}

// WeatherClient looks up the current weather from an external provider.
//
// Key considerations:
//   - Handle timeouts via context deadline
//   - Map provider errors to domain errors
//   - Transform provider DTOs to domain types
type WeatherClient interface {
	// Current returns the weather for a city or coordinates.
	// Returns domain.ErrNotFound for unknown locations and
	// domain.ErrUnavailable if the provider cannot be reached.
	Current(ctx context.Context, query domain.WeatherQuery) (*domain.WeatherReport, error)
}
