package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quote-api/internal/domain"
	"github.com/jsamuelsen/quote-api/internal/platform/logging"
	"github.com/jsamuelsen/quote-api/internal/ports"
)

const (
	maxLatitude  = 90
	maxLongitude = 180
)

// WeatherService validates lookups before handing them to the provider.
type WeatherService struct {
	client ports.WeatherClient
	logger *slog.Logger
}

// NewWeatherService creates a weather service. A nil client is allowed:
// every lookup then reports the provider as unavailable.
func NewWeatherService(client ports.WeatherClient, logger *slog.Logger) *WeatherService {
	if logger == nil {
		logger = slog.Default()
	}

	return &WeatherService{
		client: client,
		logger: logger.With(slog.String("component", "app.WeatherService")),
	}
}

// CurrentWeather returns the weather for the query.
func (s *WeatherService) CurrentWeather(ctx context.Context, query domain.WeatherQuery) (*domain.WeatherReport, error) {
	query.City = strings.TrimSpace(query.City)

	if !query.ByCity() {
		if query.Latitude < -maxLatitude || query.Latitude > maxLatitude {
			return nil, domain.NewValidationError("must be between -90 and 90", "lat")
		}

		if query.Longitude < -maxLongitude || query.Longitude > maxLongitude {
			return nil, domain.NewValidationError("must be between -180 and 180", "lon")
		}
	}

	if s.client == nil {
		return nil, domain.NewUnavailableError("weather-service", "not configured")
	}

	logger := logging.FromContextOr(ctx, s.logger)

	report, err := s.client.Current(ctx, query)
	if err != nil {
		logger.WarnContext(ctx, "weather lookup failed",
			slog.String("city", query.City),
			slog.Any("error", err),
		)

		return nil, err
	}

	logger.DebugContext(ctx, "weather lookup succeeded",
		slog.String("location", report.Location),
		slog.Float64("temperature", report.Temperature),
	)

	return report, nil
}
