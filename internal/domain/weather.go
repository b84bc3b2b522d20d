package domain

// WeatherReport is the current temperature at a location.
type WeatherReport struct {
	// Location is the place name reported by the provider.
	Location string

	// Temperature is in the units the provider was asked for (Celsius by default).
	Temperature float64

	Latitude  float64
	Longitude float64
}

// WeatherQuery selects a location either by city name or by coordinates.
// City takes precedence when both are set.
type WeatherQuery struct {
	City      string
	Latitude  float64
	Longitude float64
}

// ByCity reports whether the query targets a city name.
func (q WeatherQuery) ByCity() bool {
	return q.City != ""
}
