package exporter

import (
	"log/slog"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"owm-exporter/internal/types"
)

// WeatherSource is what the collector needs from a location handle. The
// handle caches snapshots for ten minutes, so scrapes more frequent than
// that are served from cache and never hit the API.
type WeatherSource interface {
	Name() string
	CountryCode() string
	CurrentWeather() (*types.WeatherInformation, error)
	CurrentAirPollution() (*types.AirPollutionInformation, error)
}

// APICallCounter reports the number of attempted upstream API calls.
type APICallCounter interface {
	APICalls() int64
}

// Collector exports weather and air pollution data for a fixed set of
// locations as Prometheus metrics. Location handles and the client have no
// concurrency contract, so scrapes are serialized with a mutex.
type Collector struct {
	mu        sync.Mutex
	logger    *slog.Logger
	client    APICallCounter
	locations []WeatherSource

	temperature     *prometheus.Desc
	feelsLike       *prometheus.Desc
	temperatureMin  *prometheus.Desc
	temperatureMax  *prometheus.Desc
	pressure        *prometheus.Desc
	humidity        *prometheus.Desc
	visibility      *prometheus.Desc
	windSpeed       *prometheus.Desc
	windDirection   *prometheus.Desc
	windGust        *prometheus.Desc
	cloudiness      *prometheus.Desc
	rainVolume1h    *prometheus.Desc
	rainVolume3h    *prometheus.Desc
	snowVolume1h    *prometheus.Desc
	snowVolume3h    *prometheus.Desc
	condition       *prometheus.Desc
	observationTime *prometheus.Desc
	sunrise         *prometheus.Desc
	sunset          *prometheus.Desc

	airQualityIndex  *prometheus.Desc
	pollutant        *prometheus.Desc
	pollutionObsTime *prometheus.Desc

	up       *prometheus.Desc
	apiCalls *prometheus.Desc
}

var locationLabels = []string{"location", "country_code"}

func newDesc(name, help string, extraLabels ...string) *prometheus.Desc {
	return prometheus.NewDesc(name, help, append(locationLabels, extraLabels...), nil)
}

func NewCollector(client APICallCounter, locations []WeatherSource, logger *slog.Logger) *Collector {
	return &Collector{
		logger:    logger.With("component", "collector"),
		client:    client,
		locations: locations,

		temperature:     newDesc("owm_temperature", "Current temperature in the configured unit system."),
		feelsLike:       newDesc("owm_temperature_feels_like", "Perceived temperature in the configured unit system."),
		temperatureMin:  newDesc("owm_temperature_min", "Current minimum temperature observed within the area."),
		temperatureMax:  newDesc("owm_temperature_max", "Current maximum temperature observed within the area."),
		pressure:        newDesc("owm_pressure_hpa", "Atmospheric pressure in hPa."),
		humidity:        newDesc("owm_humidity_percent", "Relative humidity in percent."),
		visibility:      newDesc("owm_visibility_meters", "Visibility in meters."),
		windSpeed:       newDesc("owm_wind_speed", "Wind speed in the configured unit system."),
		windDirection:   newDesc("owm_wind_direction_degrees", "Wind direction in meteorological degrees."),
		windGust:        newDesc("owm_wind_gust", "Wind gust speed; absent when the station did not report it."),
		cloudiness:      newDesc("owm_cloudiness_percent", "Cloud cover in percent."),
		rainVolume1h:    newDesc("owm_rain_volume_1h_mm", "Rain volume over the last hour in mm."),
		rainVolume3h:    newDesc("owm_rain_volume_3h_mm", "Rain volume over the last three hours in mm."),
		snowVolume1h:    newDesc("owm_snow_volume_1h_mm", "Snow volume over the last hour in mm."),
		snowVolume3h:    newDesc("owm_snow_volume_3h_mm", "Snow volume over the last three hours in mm."),
		condition:       newDesc("owm_weather_condition", "Reported weather conditions, one series per condition.", "condition_id", "main", "description"),
		observationTime: newDesc("owm_weather_observation_timestamp_seconds", "Unix timestamp of the weather observation."),
		sunrise:         newDesc("owm_sunrise_timestamp_seconds", "Unix timestamp of today's sunrise."),
		sunset:          newDesc("owm_sunset_timestamp_seconds", "Unix timestamp of today's sunset."),

		airQualityIndex:  newDesc("owm_air_quality_index", "Air quality index, 1 (good) to 5 (very poor)."),
		pollutant:        newDesc("owm_air_pollution_concentration_ugm3", "Pollutant concentration in micrograms per cubic meter.", "component"),
		pollutionObsTime: newDesc("owm_air_pollution_observation_timestamp_seconds", "Unix timestamp of the air pollution observation."),

		up:       newDesc("owm_up", "Whether the last fetch for this location succeeded."),
		apiCalls: prometheus.NewDesc("owm_api_calls_total", "Attempted calls against the OpenWeatherMap API.", nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.temperature
	ch <- c.feelsLike
	ch <- c.temperatureMin
	ch <- c.temperatureMax
	ch <- c.pressure
	ch <- c.humidity
	ch <- c.visibility
	ch <- c.windSpeed
	ch <- c.windDirection
	ch <- c.windGust
	ch <- c.cloudiness
	ch <- c.rainVolume1h
	ch <- c.rainVolume3h
	ch <- c.snowVolume1h
	ch <- c.snowVolume3h
	ch <- c.condition
	ch <- c.observationTime
	ch <- c.sunrise
	ch <- c.sunset
	ch <- c.airQualityIndex
	ch <- c.pollutant
	ch <- c.pollutionObsTime
	ch <- c.up
	ch <- c.apiCalls
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, loc := range c.locations {
		up := 1.0
		if !c.collectWeather(ch, loc) {
			up = 0
		}
		if !c.collectAirPollution(ch, loc) {
			up = 0
		}
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, up, loc.Name(), loc.CountryCode())
	}

	ch <- prometheus.MustNewConstMetric(c.apiCalls, prometheus.CounterValue, float64(c.client.APICalls()))
}

func (c *Collector) collectWeather(ch chan<- prometheus.Metric, loc WeatherSource) bool {
	info, err := loc.CurrentWeather()
	if err != nil {
		c.logger.Error("failed to fetch current weather",
			"location", loc.Name(),
			"country_code", loc.CountryCode(),
			"error", err,
		)
		return false
	}

	name, country := loc.Name(), loc.CountryCode()
	gauge := func(desc *prometheus.Desc, value float64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, value, name, country)
	}

	gauge(c.temperature, info.Temperature.Current)
	gauge(c.feelsLike, info.Temperature.FeelsLike)
	gauge(c.temperatureMin, info.Temperature.Min)
	gauge(c.temperatureMax, info.Temperature.Max)
	gauge(c.pressure, float64(info.Pressure))
	gauge(c.humidity, float64(info.Humidity))
	gauge(c.visibility, float64(info.Visibility))
	gauge(c.windSpeed, info.Wind.Speed)
	gauge(c.windDirection, info.Wind.Deg)
	if info.Wind.Gust != nil {
		gauge(c.windGust, *info.Wind.Gust)
	}
	gauge(c.cloudiness, info.Cloudiness)
	gauge(c.rainVolume1h, info.Rain.OneHour)
	gauge(c.rainVolume3h, info.Rain.ThreeHours)
	gauge(c.snowVolume1h, info.Snow.OneHour)
	gauge(c.snowVolume3h, info.Snow.ThreeHours)
	gauge(c.observationTime, float64(info.Timestamp.Unix()))
	gauge(c.sunrise, float64(info.Sunrise.Unix()))
	gauge(c.sunset, float64(info.Sunset.Unix()))

	for _, cond := range info.Conditions {
		ch <- prometheus.MustNewConstMetric(c.condition, prometheus.GaugeValue, 1,
			name, country, strconv.Itoa(cond.ID), cond.Main, cond.Description)
	}

	return true
}

func (c *Collector) collectAirPollution(ch chan<- prometheus.Metric, loc WeatherSource) bool {
	info, err := loc.CurrentAirPollution()
	if err != nil {
		c.logger.Error("failed to fetch air pollution data",
			"location", loc.Name(),
			"country_code", loc.CountryCode(),
			"error", err,
		)
		return false
	}

	name, country := loc.Name(), loc.CountryCode()

	ch <- prometheus.MustNewConstMetric(c.airQualityIndex, prometheus.GaugeValue, float64(info.AQI), name, country)
	ch <- prometheus.MustNewConstMetric(c.pollutionObsTime, prometheus.GaugeValue, float64(info.Timestamp.Unix()), name, country)

	components := map[string]float64{
		"co":    info.Components.CO,
		"no":    info.Components.NO,
		"no2":   info.Components.NO2,
		"o3":    info.Components.O3,
		"so2":   info.Components.SO2,
		"pm2_5": info.Components.PM25,
		"pm10":  info.Components.PM10,
		"nh3":   info.Components.NH3,
	}
	for component, value := range components {
		ch <- prometheus.MustNewConstMetric(c.pollutant, prometheus.GaugeValue, value, name, country, component)
	}

	return true
}
