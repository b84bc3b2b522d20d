// Package clients provides the instrumented HTTP client used by outbound
// adapters.
package clients

import "errors"

// Client errors are infrastructure failures. Adapters translate them to
// domain errors before they reach the application layer.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a request
	// without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded is returned after every attempt failed. The last
	// attempt's error is wrapped alongside it.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrServerError marks a 5xx response that exhausted the retries.
	ErrServerError = errors.New("server error")
)
