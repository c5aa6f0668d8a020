package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"owm-exporter/internal/exporter"
)

// App encapsulates application dependencies
type App struct {
	router   *gin.Engine
	logger   *slog.Logger
	registry *prometheus.Registry
}

// NewApp creates a new application with injected dependencies
func NewApp(collector *exporter.Collector, ginMode string, logger *slog.Logger) *App {
	if ginMode != "" {
		gin.SetMode(ginMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// A private registry keeps Go runtime metrics out of the exposition.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	app := &App{
		router:   router,
		logger:   logger,
		registry: registry,
	}

	logger.Info("application initialized")

	// Register routes
	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	return app.router.Run(addr)
}
