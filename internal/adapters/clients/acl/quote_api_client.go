package acl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/jsamuelsen/quote-api/internal/adapters/clients"
	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
)

const (
	quotesPath  = "/api/quotes"
	healthPath  = "/api/health"
	quoteEntity = "quote"
)

// QuoteAPIClientConfig configures a QuoteAPIClient.
type QuoteAPIClientConfig struct {
	// Client's BaseURL points at a running quote API.
	Client *clients.Client

	Logger *slog.Logger
}

// QuoteAPIClient talks to a remote quote API. It satisfies app.QuoteCreator,
// so an import can target a server instead of a local store.
type QuoteAPIClient struct {
	BaseAdapter

	logger *slog.Logger
}

// NewQuoteAPIClient creates the adapter. Panics if Client is nil.
func NewQuoteAPIClient(cfg QuoteAPIClientConfig) *QuoteAPIClient {
	if cfg.Client == nil {
		panic("QuoteAPIClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteAPIClient{
		BaseAdapter: NewBaseAdapter(cfg.Client),
		logger:      logger,
	}
}

// quoteDTO is the wire form of a quote.
type quoteDTO struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

type deletedDTO struct {
	Removed quoteDTO `json:"removed"`
}

type healthDTO struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp int64   `json:"timestamp"`
}

// RemoteHealth is the server's view of itself.
type RemoteHealth struct {
	Status string
	Uptime time.Duration
	Time   time.Time
}

// List returns every quote on the server.
func (c *QuoteAPIClient) List(ctx context.Context) ([]domain.Quote, error) {
	body, err := c.BaseAdapter.Get(ctx, quotesPath, nil, Target{Entity: quoteEntity})
	if err != nil {
		return nil, err
	}

	ext, err := decodeForService[[]quoteDTO](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	return TranslateSlice(*ext, c.translate)
}

// Get returns one quote.
func (c *QuoteAPIClient) Get(ctx context.Context, id string) (domain.Quote, error) {
	return c.fetch(ctx, quotesPath+"/"+url.PathEscape(id), Target{Entity: quoteEntity, ID: id})
}

// Random returns a random quote.
func (c *QuoteAPIClient) Random(ctx context.Context) (domain.Quote, error) {
	return c.fetch(ctx, quotesPath+"/random", Target{Entity: "quotes"})
}

// Create stores a quote on the server.
func (c *QuoteAPIClient) Create(ctx context.Context, text, author string) (domain.Quote, error) {
	body, err := c.PostJSON(ctx, quotesPath, map[string]string{"text": text, "author": author}, Target{Entity: quoteEntity})
	if err != nil {
		return domain.Quote{}, err
	}

	ext, err := decodeForService[quoteDTO](body, c.ServiceName())
	if err != nil {
		return domain.Quote{}, err
	}

	quote, err := c.translate(ext)
	if err != nil {
		return domain.Quote{}, err
	}

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "quote created remotely", slog.String("quote_id", quote.ID))

	return quote, nil
}

// Delete removes a quote and returns it.
func (c *QuoteAPIClient) Delete(ctx context.Context, id string) (domain.Quote, error) {
	body, err := c.BaseAdapter.Delete(ctx, quotesPath+"/"+url.PathEscape(id), Target{Entity: quoteEntity, ID: id})
	if err != nil {
		return domain.Quote{}, err
	}

	ext, err := decodeForService[deletedDTO](body, c.ServiceName())
	if err != nil {
		return domain.Quote{}, err
	}

	return c.translate(&ext.Removed)
}

// Health calls the server's health endpoint.
func (c *QuoteAPIClient) Health(ctx context.Context) (*RemoteHealth, error) {
	body, err := c.BaseAdapter.Get(ctx, healthPath, nil, Target{Entity: "health"})
	if err != nil {
		return nil, err
	}

	ext, err := decodeForService[healthDTO](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	return &RemoteHealth{
		Status: ext.Status,
		Uptime: time.Duration(ext.Uptime * float64(time.Second)),
		Time:   time.UnixMilli(ext.Timestamp),
	}, nil
}

func (c *QuoteAPIClient) fetch(ctx context.Context, path string, target Target) (domain.Quote, error) {
	body, err := c.BaseAdapter.Get(ctx, path, nil, target)
	if err != nil {
		return domain.Quote{}, err
	}

	ext, err := decodeForService[quoteDTO](body, c.ServiceName())
	if err != nil {
		return domain.Quote{}, err
	}

	return c.translate(ext)
}

// translate rejects records the server should never have produced.
func (c *QuoteAPIClient) translate(ext *quoteDTO) (domain.Quote, error) {
	if ext.ID == "" {
		return domain.Quote{}, domain.NewUnavailableError(c.ServiceName(), "quote without id")
	}

	return domain.NewQuote(ext.ID, ext.Text, ext.Author)
}
