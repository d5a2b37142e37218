package handlers

import (
	"fmt"

	"github.com/alimgiray/gstats/internal/middleware"
	"github.com/alimgiray/gstats/internal/services"
	"github.com/alimgiray/gstats/web"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the gin engine with templates, middleware and routes
func NewRouter(profiles ProfileFetcher, stats StatsAggregator, exporter *services.ExportService, logger *logrus.Logger) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLogger(logger), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	homeHandler := NewHomeHandler(profiles, stats)
	exportHandler := NewExportHandler(homeHandler, exporter)
	healthHandler := NewHealthHandler()
	notFoundHandler := NewNotFoundHandler()

	router.GET("/", homeHandler.Index)
	router.POST("/", homeHandler.Lookup)
	router.GET("/export", exportHandler.Export)

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)

	router.NoRoute(notFoundHandler.NotFound)

	return router, nil
}
