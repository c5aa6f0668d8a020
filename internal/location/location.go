package location

import (
	"errors"
	"fmt"
	"time"

	"owm-exporter/internal/types"
)

// maxSnapshotAge matches OpenWeatherMap's internal update frequency: data
// for a location does not change more often than every ten minutes, so a
// cached snapshot younger than this is served without an API call.
// See https://openweathermap.org/appid#apicare
const maxSnapshotAge = 10 * time.Minute

var (
	ErrUnnamedLocation  = errors.New("location: name and country code are required")
	ErrInvalidLatitude  = errors.New("location: latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("location: longitude must be between -180 and 180")
)

// Location binds one place to a coordinate resolved exactly once at
// construction, and caches the last weather and air pollution snapshots
// while they are fresh. The two cache slots are independent: refreshing one
// does not touch the other. A Location is not safe for concurrent use;
// callers sharing one across goroutines must serialize access.
type Location struct {
	provider    WeatherProvider
	name        string
	countryCode string
	units       string
	coord       types.Coords

	lastWeather      *types.WeatherInformation
	lastAirPollution *types.AirPollutionInformation
}

// New resolves the location's coordinate through the provider's geocoding
// API. This is the only time geocoding happens for the Location's lifetime.
func New(provider WeatherProvider, name, countryCode, units string) (*Location, error) {
	if name == "" || countryCode == "" {
		return nil, ErrUnnamedLocation
	}
	coord, err := provider.Coordinate(name, countryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s,%s: %w", name, countryCode, err)
	}
	return &Location{
		provider:    provider,
		name:        name,
		countryCode: countryCode,
		units:       units,
		coord:       coord,
	}, nil
}

// NewWithCoords builds a Location from explicit coordinates; no geocoding
// call is made.
func NewWithCoords(provider WeatherProvider, name, countryCode, units string, coord types.Coords) (*Location, error) {
	if name == "" || countryCode == "" {
		return nil, ErrUnnamedLocation
	}
	if coord.Latitude < -90 || coord.Latitude > 90 {
		return nil, ErrInvalidLatitude
	}
	if coord.Longitude < -180 || coord.Longitude > 180 {
		return nil, ErrInvalidLongitude
	}
	return &Location{
		provider:    provider,
		name:        name,
		countryCode: countryCode,
		units:       units,
		coord:       coord,
	}, nil
}

func (l *Location) Name() string {
	return l.name
}

func (l *Location) CountryCode() string {
	return l.countryCode
}

func (l *Location) Coord() types.Coords {
	return l.coord
}

// CurrentWeather returns the cached weather snapshot while it is fresh and
// fetches a new one otherwise. A failed refresh propagates the error and
// leaves the previous snapshot in place; stale data is never served
// silently.
func (l *Location) CurrentWeather() (*types.WeatherInformation, error) {
	if l.lastWeather == nil || stale(l.lastWeather.Timestamp) {
		info, err := l.provider.CurrentWeather(l.coord, l.units)
		if err != nil {
			return nil, err
		}
		l.lastWeather = info
	}
	return l.lastWeather, nil
}

// CurrentAirPollution behaves like CurrentWeather, with an independent
// cache slot.
func (l *Location) CurrentAirPollution() (*types.AirPollutionInformation, error) {
	if l.lastAirPollution == nil || stale(l.lastAirPollution.Timestamp) {
		info, err := l.provider.CurrentAirPollution(l.coord)
		if err != nil {
			return nil, err
		}
		l.lastAirPollution = info
	}
	return l.lastAirPollution, nil
}

func stale(observedAt time.Time) bool {
	return time.Since(observedAt) > maxSnapshotAge
}
