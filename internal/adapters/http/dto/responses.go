package dto

import "github.com/jsamuelsen/quote-api/internal/domain"

// QuoteResponse is the wire form of a quote.
type QuoteResponse struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Author string `json:"author"`
}

// DeletedQuoteResponse is returned by DELETE /api/quotes/:id.
type DeletedQuoteResponse struct {
	Removed QuoteResponse `json:"removed"`
}

// UserResponse is the wire form of a user.
type UserResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NamesResponse lists the names resource.
type NamesResponse struct {
	Message string   `json:"message,omitempty"`
	Names   []string `json:"names"`
}

// WeatherResponse reports current conditions.
type WeatherResponse struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

// APIHealthResponse is the body of GET /api/health.
type APIHealthResponse struct {
	Status    string  `json:"status"`
	Uptime    float64 `json:"uptime"`
	Timestamp int64   `json:"timestamp"`
}

// FromQuote converts a domain quote.
func FromQuote(q domain.Quote) QuoteResponse {
	return QuoteResponse{ID: q.ID, Text: q.Text, Author: q.Author}
}

// FromQuotes converts a slice of domain quotes. The result is never nil so
// an empty store serializes as [].
func FromQuotes(qs []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, len(qs))
	for i, q := range qs {
		out[i] = FromQuote(q)
	}

	return out
}

// FromUser converts a domain user.
func FromUser(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// FromUsers converts a slice of domain users.
func FromUsers(us []domain.User) []UserResponse {
	out := make([]UserResponse, len(us))
	for i, u := range us {
		out[i] = FromUser(u)
	}

	return out
}

// FromWeather converts a domain weather report.
func FromWeather(r *domain.WeatherReport) WeatherResponse {
	return WeatherResponse{
		Location:    r.Location,
		Temperature: r.Temperature,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
	}
}

// Names wraps a names slice, never nil.
func Names(message string, names []string) NamesResponse {
	if names == nil {
		names = []string{}
	}

	return NamesResponse{Message: message, Names: names}
}
