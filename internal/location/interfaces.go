package location

import "owm-exporter/internal/types"

// WeatherProvider is the subset of the OpenWeatherMap client a Location
// needs. Declared here so tests can substitute stub providers.
type WeatherProvider interface {
	Coordinate(locationName, countryCode string) (types.Coords, error)
	CurrentWeather(coord types.Coords, units string) (*types.WeatherInformation, error)
	CurrentAirPollution(coord types.Coords) (*types.AirPollutionInformation, error)
}
