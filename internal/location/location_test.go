package location

import (
	"errors"
	"testing"
	"time"

	"owm-exporter/internal/types"
)

// Stub provider for testing

type stubProvider struct {
	coord      types.Coords
	coordErr   error
	coordCalls int

	weather      *types.WeatherInformation
	weatherErr   error
	weatherCalls int

	pollution      *types.AirPollutionInformation
	pollutionErr   error
	pollutionCalls int
}

func (s *stubProvider) Coordinate(locationName, countryCode string) (types.Coords, error) {
	s.coordCalls++
	return s.coord, s.coordErr
}

func (s *stubProvider) CurrentWeather(coord types.Coords, units string) (*types.WeatherInformation, error) {
	s.weatherCalls++
	if s.weatherErr != nil {
		return nil, s.weatherErr
	}
	info := *s.weather // each fetch returns a distinct snapshot
	return &info, nil
}

func (s *stubProvider) CurrentAirPollution(coord types.Coords) (*types.AirPollutionInformation, error) {
	s.pollutionCalls++
	if s.pollutionErr != nil {
		return nil, s.pollutionErr
	}
	info := *s.pollution
	return &info, nil
}

func weatherObservedAt(ts time.Time) *types.WeatherInformation {
	return &types.WeatherInformation{Timestamp: ts}
}

func pollutionObservedAt(ts time.Time) *types.AirPollutionInformation {
	return &types.AirPollutionInformation{Timestamp: ts}
}

func TestNewWithCoords_SkipsGeocoding(t *testing.T) {
	provider := &stubProvider{}
	coord := types.NewCoords(52.0, 4.3)

	loc, err := NewWithCoords(provider, "Delft", "NL", "metric", coord)
	if err != nil {
		t.Fatalf("NewWithCoords returned error: %v", err)
	}

	if provider.coordCalls != 0 {
		t.Errorf("geocoding was called %d times, want 0", provider.coordCalls)
	}
	if loc.Coord() != coord {
		t.Errorf("Coord() = %v, want %v", loc.Coord(), coord)
	}
}

func TestNew_GeocodesExactlyOnce(t *testing.T) {
	provider := &stubProvider{
		coord:   types.NewCoords(52.0116, 4.3571),
		weather: weatherObservedAt(time.Now()),
	}

	loc, err := New(provider, "Delft", "NL", "metric")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if provider.coordCalls != 1 {
		t.Fatalf("geocoding was called %d times during construction, want 1", provider.coordCalls)
	}

	// Queries reuse the resolved coordinate; geocoding is never repeated.
	if _, err := loc.CurrentWeather(); err != nil {
		t.Fatalf("CurrentWeather returned error: %v", err)
	}
	if provider.coordCalls != 1 {
		t.Errorf("geocoding was called %d times after a query, want 1", provider.coordCalls)
	}
}

func TestNew_GeocodingFailure(t *testing.T) {
	lookupErr := errors.New("no match")
	provider := &stubProvider{coordErr: lookupErr}

	if _, err := New(provider, "Atlantis", "XX", "metric"); !errors.Is(err, lookupErr) {
		t.Errorf("New error = %v, want wrapped %v", err, lookupErr)
	}
}

func TestConstruction_Validation(t *testing.T) {
	tests := []struct {
		name    string
		locName string
		country string
		coord   types.Coords
		wantErr error
	}{
		{
			name:    "missing location name",
			locName: "",
			country: "NL",
			coord:   types.NewCoords(52.0, 4.3),
			wantErr: ErrUnnamedLocation,
		},
		{
			name:    "missing country code",
			locName: "Delft",
			country: "",
			coord:   types.NewCoords(52.0, 4.3),
			wantErr: ErrUnnamedLocation,
		},
		{
			name:    "latitude out of range",
			locName: "Delft",
			country: "NL",
			coord:   types.NewCoords(90.5, 4.3),
			wantErr: ErrInvalidLatitude,
		},
		{
			name:    "longitude out of range",
			locName: "Delft",
			country: "NL",
			coord:   types.NewCoords(52.0, -180.5),
			wantErr: ErrInvalidLongitude,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWithCoords(&stubProvider{}, tt.locName, tt.country, "metric", tt.coord)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewWithCoords error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCurrentWeather_ServesFreshSnapshotFromCache(t *testing.T) {
	provider := &stubProvider{weather: weatherObservedAt(time.Now())}
	loc, _ := NewWithCoords(provider, "Delft", "NL", "metric", types.NewCoords(52.0, 4.3))

	first, err := loc.CurrentWeather()
	if err != nil {
		t.Fatalf("first CurrentWeather returned error: %v", err)
	}
	second, err := loc.CurrentWeather()
	if err != nil {
		t.Fatalf("second CurrentWeather returned error: %v", err)
	}

	if provider.weatherCalls != 1 {
		t.Errorf("provider was called %d times, want 1", provider.weatherCalls)
	}
	if first != second {
		t.Error("second call did not return the cached snapshot")
	}
}

func TestCurrentWeather_FreshnessBoundary(t *testing.T) {
	tests := []struct {
		name      string
		age       time.Duration
		wantCalls int
	}{
		{
			name:      "just inside the window",
			age:       10*time.Minute - time.Second,
			wantCalls: 1,
		},
		{
			name:      "just past the window",
			age:       10*time.Minute + time.Second,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{weather: weatherObservedAt(time.Now().Add(-tt.age))}
			loc, _ := NewWithCoords(provider, "Delft", "NL", "metric", types.NewCoords(52.0, 4.3))

			if _, err := loc.CurrentWeather(); err != nil {
				t.Fatalf("first CurrentWeather returned error: %v", err)
			}
			if _, err := loc.CurrentWeather(); err != nil {
				t.Fatalf("second CurrentWeather returned error: %v", err)
			}

			if provider.weatherCalls != tt.wantCalls {
				t.Errorf("provider was called %d times, want %d", provider.weatherCalls, tt.wantCalls)
			}
		})
	}
}

func TestCaches_AreIndependent(t *testing.T) {
	// Weather snapshot is already stale, pollution snapshot is fresh.
	provider := &stubProvider{
		weather:   weatherObservedAt(time.Now().Add(-11 * time.Minute)),
		pollution: pollutionObservedAt(time.Now()),
	}
	loc, _ := NewWithCoords(provider, "Delft", "NL", "metric", types.NewCoords(52.0, 4.3))

	if _, err := loc.CurrentAirPollution(); err != nil {
		t.Fatalf("CurrentAirPollution returned error: %v", err)
	}

	// Two weather queries: the stale first result forces a second fetch.
	for i := 0; i < 2; i++ {
		if _, err := loc.CurrentWeather(); err != nil {
			t.Fatalf("CurrentWeather returned error: %v", err)
		}
	}
	if provider.weatherCalls != 2 {
		t.Errorf("weather was fetched %d times, want 2", provider.weatherCalls)
	}

	// Refreshing weather must not have touched the pollution cache.
	if _, err := loc.CurrentAirPollution(); err != nil {
		t.Fatalf("CurrentAirPollution returned error: %v", err)
	}
	if provider.pollutionCalls != 1 {
		t.Errorf("pollution was fetched %d times, want 1", provider.pollutionCalls)
	}
}

func TestCurrentWeather_RefreshFailurePropagates(t *testing.T) {
	provider := &stubProvider{weather: weatherObservedAt(time.Now().Add(-11 * time.Minute))}
	loc, _ := NewWithCoords(provider, "Delft", "NL", "metric", types.NewCoords(52.0, 4.3))

	if _, err := loc.CurrentWeather(); err != nil {
		t.Fatalf("initial CurrentWeather returned error: %v", err)
	}

	// The cached snapshot is stale, so the next query must refresh; a failed
	// refresh propagates instead of silently serving the stale snapshot.
	fetchErr := errors.New("upstream down")
	provider.weatherErr = fetchErr
	if _, err := loc.CurrentWeather(); !errors.Is(err, fetchErr) {
		t.Fatalf("CurrentWeather error = %v, want %v", err, fetchErr)
	}

	// Once the provider recovers, the refresh goes through again.
	provider.weatherErr = nil
	if _, err := loc.CurrentWeather(); err != nil {
		t.Fatalf("CurrentWeather after recovery returned error: %v", err)
	}
	if provider.weatherCalls != 3 {
		t.Errorf("provider was called %d times, want 3", provider.weatherCalls)
	}
}

func TestCoordinate_NeverChangesAfterConstruction(t *testing.T) {
	coord := types.NewCoords(52.0, 4.3)
	provider := &stubProvider{
		weather:   weatherObservedAt(time.Now()),
		pollution: pollutionObservedAt(time.Now()),
	}
	loc, _ := NewWithCoords(provider, "Delft", "NL", "metric", coord)

	if _, err := loc.CurrentWeather(); err != nil {
		t.Fatalf("CurrentWeather returned error: %v", err)
	}
	if _, err := loc.CurrentAirPollution(); err != nil {
		t.Fatalf("CurrentAirPollution returned error: %v", err)
	}

	if loc.Coord() != coord {
		t.Errorf("Coord() = %v after queries, want %v", loc.Coord(), coord)
	}
}
