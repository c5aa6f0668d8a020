package types

import "time"

// Sentinel values used when the API omits an optional condition sub-field.
// See https://openweathermap.org/weather-conditions
const (
	ConditionIDNotFound   = -999
	ConditionTextNotFound = "not found"
)

// WeatherCondition describes one weather condition as reported by the
// OpenWeatherMap API. A single observation can carry several conditions
// at once (e.g. rain and mist).
type WeatherCondition struct {
	ID          int
	Main        string
	Description string
	Icon        string
}

// WeatherInformation is an immutable snapshot of current weather at a
// coordinate. Timestamp is the observation time reported by the API and
// identifies the snapshot for staleness purposes.
type WeatherInformation struct {
	Coord       Coords
	Conditions  []WeatherCondition
	Temperature Temperature
	Pressure    int
	Humidity    int
	Visibility  int
	Wind        Wind
	Cloudiness  float64
	Rain        Precipitation
	Snow        Precipitation
	Timestamp   time.Time
	Sunrise     time.Time
	Sunset      time.Time
}
