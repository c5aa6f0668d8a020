package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes sets up all HTTP endpoints
func (app *App) registerRoutes() {
	app.router.GET("/ping", app.handlePing)
	app.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})))
}
