// Package domain contains core business entities and rules.
package domain

import "strings"

// Quote represents a quotation with its author.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is the unique identifier for this quote. Assigned once at creation.
	ID string

	// Text is the body of the quote.
	Text string

	// Author is who said or wrote the quote.
	Author string
}

// NewQuote builds a quote from raw input, trimming surrounding whitespace.
// Returns a ValidationError naming every field that is empty after trimming.
func NewQuote(id, text, author string) (Quote, error) {
	text = strings.TrimSpace(text)
	author = strings.TrimSpace(author)

	var missing []string
	if text == "" {
		missing = append(missing, "text")
	}

	if author == "" {
		missing = append(missing, "author")
	}

	if len(missing) > 0 {
		return Quote{}, NewValidationError("is required", missing...)
	}

	return Quote{ID: id, Text: text, Author: author}, nil
}
