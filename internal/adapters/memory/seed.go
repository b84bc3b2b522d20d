package memory

import "github.com/jsamuelsen/quote-api/internal/domain"

// SeedQuotes returns the sample quotes loaded at startup.
func SeedQuotes() []domain.Quote {
	return []domain.Quote{
		{
			ID:     "q1",
			Text:   "Be yourself; everyone else is already taken.",
			Author: "Oscar Wilde",
		},
		{
			ID:     "q2",
			Text:   "Simplicity is the soul of efficiency.",
			Author: "Austin Freeman",
		},
		{
			ID:     "q3",
			Text:   "Code is like humor. When you have to explain it, it’s bad.",
			Author: "Cory House",
		},
	}
}

// SeedUsers returns the fixed user directory.
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "Alice Johnson", Email: "alice@example.com", Role: "admin"},
		{ID: 2, Name: "Bob Smith", Email: "bob@example.com", Role: "editor"},
		{ID: 3, Name: "Charlie Brown", Email: "charlie@example.com", Role: "viewer"},
	}
}
