package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jsamuelsen/quote-api/internal/adapters/clients"
	"github.com/jsamuelsen/quote-api/internal/domain"
)

// BaseAdapter is the request plumbing shared by adapters.
type BaseAdapter struct {
	client *clients.Client
}

// NewBaseAdapter wraps client.
func NewBaseAdapter(client *clients.Client) BaseAdapter {
	return BaseAdapter{client: client}
}

// ServiceName returns the downstream service name.
func (a *BaseAdapter) ServiceName() string {
	return a.client.ServiceName()
}

// CircuitState reports the client's breaker state.
func (a *BaseAdapter) CircuitState() clients.State {
	return a.client.CircuitState()
}

// Get sends a GET and returns the body of a 2xx response. The caller closes
// it. Any failure is already a domain error.
func (a *BaseAdapter) Get(ctx context.Context, path string, query url.Values, target Target) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path, query)

	return a.body(resp, err, target)
}

// PostJSON sends body as JSON and returns the body of a 2xx response.
func (a *BaseAdapter) PostJSON(ctx context.Context, path string, body any, target Target) (io.ReadCloser, error) {
	resp, err := a.client.PostJSON(ctx, path, body)

	return a.body(resp, err, target)
}

// Delete sends a DELETE and returns the body of a 2xx response.
func (a *BaseAdapter) Delete(ctx context.Context, path string, target Target) (io.ReadCloser, error) {
	resp, err := a.client.Delete(ctx, path)

	return a.body(resp, err, target)
}

func (a *BaseAdapter) body(resp *http.Response, err error, target Target) (io.ReadCloser, error) {
	target.Service = a.ServiceName()

	if err != nil {
		return nil, MapHTTPError(nil, err, target)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()

		return nil, MapHTTPError(resp, nil, target)
	}

	return resp.Body, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// decodeForService is DecodeResponse with decode failures reported as the
// service being unavailable: a body we cannot read is a broken dependency.
func decodeForService[T any](body io.ReadCloser, service string) (*T, error) {
	out, err := DecodeResponse[T](body)
	if err != nil {
		return nil, domain.NewUnavailableError(service, err.Error())
	}

	return out, nil
}

// Translator converts one external DTO to a domain value.
type Translator[External, Domain any] func(ext *External) (Domain, error)

// TranslateSlice applies translate to each item and stops at the first error.
func TranslateSlice[E, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, translated)
	}

	return result, nil
}
