package main

import (
	"fmt"
	"log"
	"log/slog"

	"owm-exporter/internal/config"
	"owm-exporter/internal/exporter"
	"owm-exporter/internal/location"
	"owm-exporter/internal/providers/openweathermap"
	"owm-exporter/internal/types"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	client, err := openweathermap.NewClient(cfg.OWM.APIKey, logger)
	if err != nil {
		logger.Error("failed to create OpenWeatherMap client", "error", err)
		log.Fatal(err)
	}

	locations, err := buildLocations(client, cfg)
	if err != nil {
		logger.Error("failed to set up locations", "error", err)
		log.Fatal(err)
	}
	if len(locations) == 0 {
		logger.Warn("no locations configured, exporter will only report API call metrics")
	}

	collector := exporter.NewCollector(client, locations, logger)

	// Create app
	app := NewApp(collector, cfg.Server.GinMode, logger)

	// Start server
	logger.Info("starting exporter", "addr", cfg.GetServerAddr(), "locations", len(locations))
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}

// buildLocations turns the configured locations into handles, geocoding the
// ones without explicit coordinates. Geocoding happens once here; all later
// queries reuse the resolved coordinate.
func buildLocations(client *openweathermap.Client, cfg *config.Config) ([]exporter.WeatherSource, error) {
	sources := make([]exporter.WeatherSource, 0, len(cfg.Locations))
	for _, lc := range cfg.Locations {
		var (
			loc *location.Location
			err error
		)
		if lc.Lat != nil && lc.Lon != nil {
			loc, err = location.NewWithCoords(client, lc.Name, lc.CountryCode, cfg.OWM.Units,
				types.NewCoords(*lc.Lat, *lc.Lon))
		} else {
			loc, err = location.New(client, lc.Name, lc.CountryCode, cfg.OWM.Units)
		}
		if err != nil {
			return nil, fmt.Errorf("location %s,%s: %w", lc.Name, lc.CountryCode, err)
		}
		sources = append(sources, loc)
	}
	return sources, nil
}
