package types

import "time"

// PollutantConcentrations holds pollutant concentrations in μg/m³.
type PollutantConcentrations struct {
	CO   float64
	NO   float64
	NO2  float64
	O3   float64
	SO2  float64
	PM25 float64
	PM10 float64
	NH3  float64
}

// AirPollutionInformation is an immutable snapshot of air quality at a
// coordinate. AQI is the 1-5 air quality index defined by OpenWeatherMap,
// see https://openweathermap.org/api/air-pollution
type AirPollutionInformation struct {
	Coord      Coords
	Timestamp  time.Time
	AQI        int
	Components PollutantConcentrations
}
