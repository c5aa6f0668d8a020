package openweathermap

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"owm-exporter/internal/types"
)

// API Docs: https://openweathermap.org/api
const (
	geocodingBaseURL      = "http://api.openweathermap.org/geo/1.0/direct"
	currentWeatherBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	airPollutionBaseURL   = "http://api.openweathermap.org/data/2.5/air_pollution"

	requestTimeout = 10 * time.Second

	// geocodeCacheSize caps the memoized (name, country) -> coordinate map.
	// Entries beyond the cap evict least recently used.
	geocodeCacheSize = 256
)

// Unit systems accepted by the current weather endpoint.
const (
	UnitsStandard = "standard"
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
)

type placeKey struct {
	name    string
	country string
}

// Client wraps the OpenWeatherMap geocoding, current weather and air
// pollution APIs. It owns a memoized geocoding cache and a counter of
// attempted API calls. A Client is not safe for concurrent use; callers
// sharing one across goroutines must serialize access.
type Client struct {
	http   *resty.Client
	apiKey string
	logger *slog.Logger

	geocodingURL      string
	currentWeatherURL string
	airPollutionURL   string

	geocodeCache *lru.Cache[placeKey, types.Coords]
	apiCalls     int64
}

func NewClient(apiKey string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cache, err := lru.New[placeKey, types.Coords](geocodeCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode cache: %w", err)
	}
	return &Client{
		http:              resty.New().SetTimeout(requestTimeout),
		apiKey:            apiKey,
		logger:            logger.With("component", "owm-client"),
		geocodingURL:      geocodingBaseURL,
		currentWeatherURL: currentWeatherBaseURL,
		airPollutionURL:   airPollutionBaseURL,
		geocodeCache:      cache,
	}, nil
}

// SetBaseURLs overrides the three API endpoints (useful for testing).
func (c *Client) SetBaseURLs(geocoding, currentWeather, airPollution string) {
	c.geocodingURL = geocoding
	c.currentWeatherURL = currentWeather
	c.airPollutionURL = airPollution
}

// APICalls reports how many requests this client has issued against the
// API. It counts attempts, not successes: the counter is incremented before
// the response is interpreted.
func (c *Client) APICalls() int64 {
	return c.apiCalls
}

// Coordinate resolves a location name and ISO 3166 country code to a
// coordinate via the geocoding API, requesting at most one match. Results
// are memoized per exact (name, country) pair, since geocoding results for
// a fixed pair essentially never change.
func (c *Client) Coordinate(locationName, countryCode string) (types.Coords, error) {
	key := placeKey{name: locationName, country: countryCode}
	if coords, ok := c.geocodeCache.Get(key); ok {
		return coords, nil
	}

	params := map[string]string{
		"q":     fmt.Sprintf("%s,%s", locationName, countryCode),
		"limit": "1",
	}

	var results []geocodeResult
	if err := c.apiGet(c.geocodingURL, params, &results); err != nil {
		return types.Coords{}, err
	}
	if len(results) == 0 {
		return types.Coords{}, fmt.Errorf("%w: %s,%s", ErrNoMatch, locationName, countryCode)
	}

	first := results[0]
	coords, err := coordsFrom(first.Lat, first.Lon, first.Latitude, first.Longitude)
	if err != nil {
		return types.Coords{}, err
	}

	c.geocodeCache.Add(key, coords)
	return coords, nil
}

// CurrentWeather fetches the current weather for a coordinate in the given
// unit system (metric when empty).
func (c *Client) CurrentWeather(coord types.Coords, units string) (*types.WeatherInformation, error) {
	if units == "" {
		units = UnitsMetric
	}

	params := map[string]string{
		"lat":   formatCoord(coord.Latitude),
		"lon":   formatCoord(coord.Longitude),
		"units": units,
	}

	var payload currentWeatherPayload
	if err := c.apiGet(c.currentWeatherURL, params, &payload); err != nil {
		return nil, err
	}
	return weatherFromPayload(&payload)
}

// CurrentAirPollution fetches the current air pollution data for a
// coordinate, parsing the first entry of the result list.
func (c *Client) CurrentAirPollution(coord types.Coords) (*types.AirPollutionInformation, error) {
	params := map[string]string{
		"lat": formatCoord(coord.Latitude),
		"lon": formatCoord(coord.Longitude),
	}

	var payload airPollutionPayload
	if err := c.apiGet(c.airPollutionURL, params, &payload); err != nil {
		return nil, err
	}
	return airPollutionFromPayload(&payload)
}

// apiGet performs one GET against an API endpoint and decodes the JSON body
// into out. The call counter is incremented before the response is
// interpreted, so it reflects attempted calls.
func (c *Client) apiGet(baseURL string, params map[string]string, out any) error {
	c.apiCalls++

	params["appid"] = c.apiKey

	c.logger.Debug("calling OpenWeatherMap API", "url", baseURL)

	resp, err := c.http.R().SetQueryParams(params).Get(baseURL)
	if err != nil {
		c.logger.Error("OpenWeatherMap request failed", "url", baseURL, "error", err)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode() != http.StatusOK {
		c.logger.Error("OpenWeatherMap API returned error",
			"url", baseURL,
			"status_code", resp.StatusCode(),
			"response_body", string(resp.Body()),
		)
		return fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrBadResponse, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
