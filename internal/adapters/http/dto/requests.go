package dto

import "github.com/jsamuelsen/quote-api/internal/domain"

// CreateQuoteRequest is the body of POST /api/quotes. Pointers distinguish
// an absent field from an empty one.
type CreateQuoteRequest struct {
	Text   *string `json:"text"   validate:"required"`
	Author *string `json:"author" validate:"required"`
}

// Values returns the fields with absent ones as "".
func (r *CreateQuoteRequest) Values() (text, author string) {
	return deref(r.Text), deref(r.Author)
}

// NameRequest is the body of POST /names.
type NameRequest struct {
	Name *string `json:"name" validate:"required"`
}

// WeatherQuery is bound from the query string of GET /api/weather. Either
// city or both coordinates must be present.
type WeatherQuery struct {
	City string   `form:"city" validate:"required_without_all=Lat Lon,omitempty,max=100"`
	Lat  *float64 `form:"lat"  validate:"required_without=City,omitempty,min=-90,max=90"`
	Lon  *float64 `form:"lon"  validate:"required_without=City,omitempty,min=-180,max=180"`
}

// Domain converts the bound query to its domain form.
func (q *WeatherQuery) Domain() domain.WeatherQuery {
	out := domain.WeatherQuery{City: q.City}
	if q.Lat != nil {
		out.Latitude = *q.Lat
	}

	if q.Lon != nil {
		out.Longitude = *q.Lon
	}

	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
