package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/quote-api/internal/adapters/clients"
	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
)

const (
	weatherPath   = "/data/2.5/weather"
	weatherEntity = "location"
)

// WeatherClientConfig configures a WeatherClient.
type WeatherClientConfig struct {
	// Client's BaseURL points at the OpenWeatherMap API root.
	Client *clients.Client

	APIKey string

	// Units is standard, metric or imperial. Empty means metric.
	Units string

	Logger *slog.Logger
}

// WeatherClient implements ports.WeatherClient against OpenWeatherMap's
// current weather endpoint.
type WeatherClient struct {
	BaseAdapter

	apiKey string
	units  string
	logger *slog.Logger
}

// NewWeatherClient creates the adapter. Panics if Client is nil.
func NewWeatherClient(cfg WeatherClientConfig) *WeatherClient {
	if cfg.Client == nil {
		panic("WeatherClient: Client is required")
	}

	if cfg.Units == "" {
		cfg.Units = "metric"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WeatherClient{
		BaseAdapter: NewBaseAdapter(cfg.Client),
		apiKey:      cfg.APIKey,
		units:       cfg.Units,
		logger:      logger,
	}
}

// owmResponse is the subset of the provider payload we read.
type owmResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Current implements ports.WeatherClient.
func (c *WeatherClient) Current(ctx context.Context, query domain.WeatherQuery) (*domain.WeatherReport, error) {
	params := url.Values{}
	params.Set("appid", c.apiKey)
	params.Set("units", c.units)

	id := query.City
	if query.ByCity() {
		params.Set("q", query.City)
	} else {
		lat := strconv.FormatFloat(query.Latitude, 'f', -1, 64)
		lon := strconv.FormatFloat(query.Longitude, 'f', -1, 64)
		params.Set("lat", lat)
		params.Set("lon", lon)
		id = lat + "," + lon
	}

	logger := logging.FromContextOr(ctx, c.logger)
	logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", weatherPath))

	body, err := c.Get(ctx, weatherPath, params, Target{Entity: weatherEntity, ID: id})
	if err != nil {
		return nil, err
	}

	ext, err := decodeForService[owmResponse](body, c.ServiceName())
	if err != nil {
		return nil, err
	}

	report, err := c.translate(ext, id)
	if err != nil {
		return nil, err
	}

	logger.Log(ctx, logging.LevelTrace, "translated provider response",
		slog.String("location", report.Location),
	)

	return report, nil
}

func (c *WeatherClient) translate(ext *owmResponse, fallbackName string) (*domain.WeatherReport, error) {
	if ext.Main == nil {
		return nil, domain.NewUnavailableError(c.ServiceName(), "response has no temperature")
	}

	name := ext.Name
	if name == "" {
		name = fallbackName
	}

	return &domain.WeatherReport{
		Location:    name,
		Temperature: ext.Main.Temp,
		Latitude:    ext.Coord.Lat,
		Longitude:   ext.Coord.Lon,
	}, nil
}

// Name implements ports.HealthChecker.
func (c *WeatherClient) Name() string {
	return c.ServiceName()
}

// Check implements ports.HealthChecker. It reads the breaker rather than
// calling the provider, which bills per request.
func (c *WeatherClient) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if state := c.CircuitState(); state == clients.StateOpen {
		return fmt.Errorf("circuit breaker %s", state)
	}

	return nil
}
